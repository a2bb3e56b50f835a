// Package daemonother is a typed client for the monerod endpoints that live
// outside the JSON-RPC interface, such as /get_height or /get_transactions.
// Requests are bare JSON bodies posted to {base}/{path}.
package daemonother

import (
	"github.com/refring/monero-rpc-go/pkg/daemonrpc"
)

// Path is the endpoint path of a daemon method, relative to the base URL.
type Path string

const (
	GetHeightPath       Path = "get_height"
	SetLogHashRatePath  Path = "set_log_hash_rate"
	PopBlocksPath       Path = "pop_blocks"
	SetLogLevelPath     Path = "set_log_level"
	GetTransactionsPath Path = "get_transactions"
)

// String returns the path.
func (p Path) String() string {
	return string(p)
}

// GetHeightResponse is the chain height and the hash of the top block.
type GetHeightResponse struct {
	daemonrpc.AccessResponse
	Hash   string `json:"hash,omitempty"`
	Height uint64 `json:"height"`
}

// SetLogHashRateRequest shows or hides the hash rate in the daemon log.
type SetLogHashRateRequest struct {
	Visible bool `json:"visible"`
}

// PopBlocksRequest removes the given number of blocks from the top of the chain.
type PopBlocksRequest struct {
	NBlocks uint64 `json:"nblocks"`
}

// PopBlocksResponse is the chain height after the blocks were removed.
type PopBlocksResponse struct {
	daemonrpc.AccessResponse
	Height uint64 `json:"height"`
}

// SetLogLevelRequest sets the daemon log level, 0 (least verbose) to 4.
type SetLogLevelRequest struct {
	Level int `json:"level"`
}

// StatusResponse is the reply of endpoints that only report a status.
type StatusResponse struct {
	daemonrpc.AccessResponse
}

// GetTransactionsRequest looks up transactions by hash.
type GetTransactionsRequest struct {
	TxsHashes    []string `json:"txs_hashes"`
	DecodeAsJSON bool     `json:"decode_as_json,omitempty"`
	Prune        bool     `json:"prune,omitempty"`
	Split        bool     `json:"split,omitempty"`
}

// GetTransactionsResponse holds the transactions found and the hashes that were not.
type GetTransactionsResponse struct {
	daemonrpc.AccessResponse
	MissedTx  []string           `json:"missed_tx,omitempty"`
	Txs       []TransactionEntry `json:"txs,omitempty"`
	TxsAsHex  []string           `json:"txs_as_hex,omitempty"`
	TxsAsJSON []string           `json:"txs_as_json,omitempty"`
}

// TransactionEntry is one transaction found by get_transactions.
type TransactionEntry struct {
	TxHash          string   `json:"tx_hash"`
	AsHex           string   `json:"as_hex,omitempty"`
	AsJSON          string   `json:"as_json,omitempty"`
	PrunableAsHex   string   `json:"prunable_as_hex,omitempty"`
	PrunedAsHex     string   `json:"pruned_as_hex,omitempty"`
	BlockHeight     uint64   `json:"block_height,omitempty"`
	BlockTimestamp  uint64   `json:"block_timestamp,omitempty"`
	Confirmations   uint64   `json:"confirmations,omitempty"`
	DoubleSpendSeen bool     `json:"double_spend_seen,omitempty"`
	InPool          bool     `json:"in_pool"`
	OutputIndices   []uint64 `json:"output_indices,omitempty"`
}
