// Package daemonrpc is a typed client for the JSON-RPC interface of monerod.
package daemonrpc

import (
	"fmt"
	"math/bits"

	"github.com/refring/monero-rpc-go/pkg/monero"
)

// Method is a daemon JSON-RPC method name.
type Method string

const (
	GetBlockCountMethod      Method = "get_block_count"
	GetLastBlockHeaderMethod Method = "get_last_block_header"
	GenerateBlocksMethod     Method = "generateblocks"
	GetFeeEstimateMethod     Method = "get_fee_estimate"
	SyncInfoMethod           Method = "sync_info"
	GetVersionMethod         Method = "get_version"
	FlushTxpoolMethod        Method = "flush_txpool"
	GetInfoMethod            Method = "get_info"
)

// String returns the method name.
func (m Method) String() string {
	return string(m)
}

// StatusOK is the status of a successful daemon reply.
const StatusOK = "OK"

// AccessResponse holds the fields the daemon adds to most replies.
type AccessResponse struct {
	Credits   uint64 `json:"credits,omitempty"`
	Status    string `json:"status"`
	TopHash   string `json:"top_hash,omitempty"`
	Untrusted bool   `json:"untrusted,omitempty"`
}

// GetStatus returns the status field.
func (r AccessResponse) GetStatus() string {
	return r.Status
}

type GetBlockCountResponse struct {
	AccessResponse
	Count uint64 `json:"count"`
}

type GetLastBlockHeaderRequest struct {
	FillPowHash bool `json:"fill_pow_hash,omitempty"`
}

type GetLastBlockHeaderResponse struct {
	AccessResponse
	BlockHeader BlockHeader `json:"block_header"`
}

// BlockHeader describes one block.
type BlockHeader struct {
	BlockSize    uint64        `json:"block_size,omitempty"`
	BlockWeight  uint64        `json:"block_weight,omitempty"`
	Depth        uint64        `json:"depth"`
	Difficulty   uint64        `json:"difficulty,omitempty"`
	Hash         string        `json:"hash"`
	Height       uint64        `json:"height"`
	MajorVersion uint32        `json:"major_version,omitempty"`
	MinorVersion uint32        `json:"minor_version,omitempty"`
	Nonce        uint32        `json:"nonce,omitempty"`
	NumTxes      uint64        `json:"num_txes,omitempty"`
	OrphanStatus bool          `json:"orphan_status,omitempty"`
	PowHash      string        `json:"pow_hash,omitempty"`
	PrevHash     string        `json:"prev_hash"`
	Reward       monero.Amount `json:"reward"`
	Timestamp    uint64        `json:"timestamp"`
	MinerTxHash  string        `json:"miner_tx_hash,omitempty"`
}

// GenerateBlocksRequest mines blocks in regtest mode.
type GenerateBlocksRequest struct {
	AmountOfBlocks uint64 `json:"amount_of_blocks"`
	WalletAddress  string `json:"wallet_address"`
	PrevBlock      string `json:"prev_block,omitempty"`
	StartingNonce  uint32 `json:"starting_nonce,omitempty"`
}

type GenerateBlocksResponse struct {
	AccessResponse
	Blocks []string `json:"blocks"`
	Height uint64   `json:"height"`
}

type GetFeeEstimateRequest struct {
	GraceBlocks uint64 `json:"grace_blocks,omitempty"`
}

type GetFeeEstimateResponse struct {
	AccessResponse
	// Fee is the estimated fee per byte.
	Fee monero.Amount `json:"fee"`
	// Fees are the per-byte fees for the priorities slow, normal, fast and fastest.
	Fees []monero.Amount `json:"fees"`
	// QuantizationMask is the value the final fee is rounded up to a multiple of.
	QuantizationMask uint64 `json:"quantization_mask"`
}

// EstimateFee returns the fee for a transaction of the given weight at the
// given priority index, rounded up to the quantization mask. It fails with
// monero.ErrAmountOverflow when the fee does not fit in an Amount.
func (r GetFeeEstimateResponse) EstimateFee(weight uint64, priority int) (monero.Amount, error) {
	perByte := r.Fee
	if priority >= 0 && priority < len(r.Fees) {
		perByte = r.Fees[priority]
	}

	hi, fee := bits.Mul64(uint64(perByte), weight)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %s per byte for weight %d", monero.ErrAmountOverflow, perByte, weight)
	}
	if mask := r.QuantizationMask; mask > 1 {
		rounded, carry := bits.Add64(fee, mask-1, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: rounding %d to a multiple of %d", monero.ErrAmountOverflow, fee, mask)
		}
		fee = rounded / mask * mask
	}
	return monero.Amount(fee), nil
}

type SyncInfoResponse struct {
	AccessResponse
	Height uint64 `json:"height"`
	// NextNeededPruningSeed is the pruning seed needed next for pruned sync.
	NextNeededPruningSeed uint32 `json:"next_needed_pruning_seed"`
	// Overview shows the block queue, one character per block set.
	Overview string     `json:"overview"`
	Peers    []SyncPeer `json:"peers"`
	Spans    []Span     `json:"spans,omitempty"`
	// TargetHeight is the height the node syncs to, zero when synchronised.
	TargetHeight uint64 `json:"target_height"`
}

type SyncPeer struct {
	Info ConnectionInfo `json:"info"`
}

// ConnectionInfo describes a peer connection.
type ConnectionInfo struct {
	Address      string `json:"address"`
	Host         string `json:"host"`
	IP           string `json:"ip,omitempty"`
	Port         string `json:"port,omitempty"`
	PeerID       string `json:"peer_id,omitempty"`
	ConnectionID string `json:"connection_id,omitempty"`
	Height       uint64 `json:"height,omitempty"`
	Incoming     bool   `json:"incoming,omitempty"`
	State        string `json:"state,omitempty"`
	LiveTime     uint64 `json:"live_time,omitempty"`
	PruningSeed  uint32 `json:"pruning_seed,omitempty"`
}

// Span is a range of blocks being downloaded from a peer.
type Span struct {
	ConnectionID     string `json:"connection_id"`
	NBlocks          uint64 `json:"nblocks"`
	Rate             uint64 `json:"rate"`
	RemoteAddress    string `json:"remote_address"`
	Size             uint64 `json:"size"`
	Speed            uint64 `json:"speed"`
	StartBlockHeight uint64 `json:"start_block_height"`
}

type GetVersionResponse struct {
	AccessResponse
	Version uint32 `json:"version"`
	Release bool   `json:"release,omitempty"`
}

type FlushTxpoolRequest struct {
	TxIDs []string `json:"txids,omitempty"`
}

type FlushTxpoolResponse struct {
	AccessResponse
}

type GetInfoResponse struct {
	AccessResponse
	Height                   uint64 `json:"height"`
	TargetHeight             uint64 `json:"target_height,omitempty"`
	Difficulty               uint64 `json:"difficulty,omitempty"`
	TxCount                  uint64 `json:"tx_count,omitempty"`
	TxPoolSize               uint64 `json:"tx_pool_size,omitempty"`
	IncomingConnectionsCount uint64 `json:"incoming_connections_count,omitempty"`
	OutgoingConnectionsCount uint64 `json:"outgoing_connections_count,omitempty"`
	NetType                  string `json:"nettype"`
	TopBlockHash             string `json:"top_block_hash,omitempty"`
	Synchronized             bool   `json:"synchronized,omitempty"`
	Offline                  bool   `json:"offline,omitempty"`
	Restricted               bool   `json:"restricted,omitempty"`
	Version                  string `json:"version,omitempty"`
}
