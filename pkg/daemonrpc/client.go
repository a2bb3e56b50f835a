package daemonrpc

import (
	"context"

	"github.com/refring/monero-rpc-go/pkg/rpc"
)

// Client is the monerod JSON-RPC facade. Replies whose status is not "OK"
// are returned as errors. It is safe for concurrent use.
type Client struct {
	rpc *rpc.Client
}

// NewClient wraps an rpc.Client classifying with ErrorRules.
func NewClient(c *rpc.Client) *Client {
	return &Client{rpc: c}
}

// RPC returns the underlying rpc.Client.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

// Invoke calls an arbitrary daemon JSON-RPC method.
func (c *Client) Invoke(ctx context.Context, method string, params, result any) error {
	return c.rpc.Invoke(ctx, method, params, result)
}

// GetBlockCount returns the number of blocks in the longest chain.
func (c *Client) GetBlockCount(ctx context.Context) (GetBlockCountResponse, error) {
	return call[GetBlockCountResponse](ctx, c.rpc, GetBlockCountMethod, nil)
}

// GetLastBlockHeader returns the header of the most recent block.
func (c *Client) GetLastBlockHeader(ctx context.Context, req GetLastBlockHeaderRequest) (GetLastBlockHeaderResponse, error) {
	return call[GetLastBlockHeaderResponse](ctx, c.rpc, GetLastBlockHeaderMethod, req)
}

// GenerateBlocks mines blocks to an address. Only available in regtest mode,
// otherwise it fails with rpc.ErrRegtestRequired.
func (c *Client) GenerateBlocks(ctx context.Context, req GenerateBlocksRequest) (GenerateBlocksResponse, error) {
	return call[GenerateBlocksResponse](ctx, c.rpc, GenerateBlocksMethod, req)
}

// GetFeeEstimate returns the per-byte fee estimate.
func (c *Client) GetFeeEstimate(ctx context.Context, req GetFeeEstimateRequest) (GetFeeEstimateResponse, error) {
	return call[GetFeeEstimateResponse](ctx, c.rpc, GetFeeEstimateMethod, req)
}

// SyncInfo returns synchronisation information and the connected peers.
func (c *Client) SyncInfo(ctx context.Context) (SyncInfoResponse, error) {
	return call[SyncInfoResponse](ctx, c.rpc, SyncInfoMethod, nil)
}

// GetVersion returns the daemon RPC version.
func (c *Client) GetVersion(ctx context.Context) (GetVersionResponse, error) {
	return call[GetVersionResponse](ctx, c.rpc, GetVersionMethod, nil)
}

// FlushTxpool removes the given transactions from the pool, or all of them
// when TxIDs is empty.
func (c *Client) FlushTxpool(ctx context.Context, req FlushTxpoolRequest) error {
	_, err := call[FlushTxpoolResponse](ctx, c.rpc, FlushTxpoolMethod, req)
	return err
}

// GetInfo returns general information about the node and the network.
func (c *Client) GetInfo(ctx context.Context) (GetInfoResponse, error) {
	return call[GetInfoResponse](ctx, c.rpc, GetInfoMethod, nil)
}

type statusResponse interface {
	GetStatus() string
}

func call[R statusResponse](ctx context.Context, c *rpc.Client, method Method, params any) (R, error) {
	res, err := rpc.Call[R](ctx, c, method.String(), params)
	if err != nil {
		return res, err
	}
	if err := CheckStatus(c.Classifier(), res.GetStatus()); err != nil {
		var zero R
		return zero, err
	}
	return res, nil
}
