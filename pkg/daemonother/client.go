package daemonother

import (
	"context"

	"github.com/refring/monero-rpc-go/pkg/daemonrpc"
	"github.com/refring/monero-rpc-go/pkg/rpc"
)

// Client is the facade for the daemon's non-JSON-RPC endpoints. A reply whose
// status is not "OK" is classified with the daemon rules and returned as an
// error, rpc.ErrStatusNotOK when no rule matches. It is safe for concurrent use.
type Client struct {
	rpc *rpc.Client
}

// NewClient wraps an rpc.Client classifying with daemonrpc.ErrorRules.
func NewClient(c *rpc.Client) *Client {
	return &Client{rpc: c}
}

// RPC returns the underlying rpc.Client.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

// Invoke calls an arbitrary endpoint, see rpc.Client.InvokeOther.
func (c *Client) Invoke(ctx context.Context, path string, params, result any) error {
	return c.rpc.InvokeOther(ctx, path, params, result)
}

// GetHeight returns the current block height.
func (c *Client) GetHeight(ctx context.Context) (GetHeightResponse, error) {
	return call[GetHeightResponse](ctx, c.rpc, GetHeightPath, nil)
}

// SetLogHashRate shows or hides the hash rate in the log. The daemon answers
// "NOT MINING" when it is not mining, reported as rpc.ErrStatusNotOK.
func (c *Client) SetLogHashRate(ctx context.Context, visible bool) error {
	_, err := call[StatusResponse](ctx, c.rpc, SetLogHashRatePath, SetLogHashRateRequest{Visible: visible})
	return err
}

// PopBlocks removes the top n blocks and returns the new height.
func (c *Client) PopBlocks(ctx context.Context, n uint64) (PopBlocksResponse, error) {
	return call[PopBlocksResponse](ctx, c.rpc, PopBlocksPath, PopBlocksRequest{NBlocks: n})
}

// SetLogLevel sets the daemon log level.
func (c *Client) SetLogLevel(ctx context.Context, level int) error {
	_, err := call[StatusResponse](ctx, c.rpc, SetLogLevelPath, SetLogLevelRequest{Level: level})
	return err
}

// GetTransactions looks up transactions in the chain and the pool.
func (c *Client) GetTransactions(ctx context.Context, req GetTransactionsRequest) (GetTransactionsResponse, error) {
	if req.TxsHashes == nil {
		req.TxsHashes = []string{}
	}
	return call[GetTransactionsResponse](ctx, c.rpc, GetTransactionsPath, req)
}

type statusResponse interface {
	GetStatus() string
}

func call[R statusResponse](ctx context.Context, c *rpc.Client, path Path, params any) (R, error) {
	res, err := rpc.CallOther[R](ctx, c, path.String(), params)
	if err != nil {
		return res, err
	}
	if err := daemonrpc.CheckStatus(c.Classifier(), res.GetStatus()); err != nil {
		var zero R
		return zero, err
	}
	return res, nil
}
