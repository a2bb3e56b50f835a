package walletrpc

import (
	"context"

	"github.com/refring/monero-rpc-go/pkg/monero"
	"github.com/refring/monero-rpc-go/pkg/rpc"
)

// Client is the wallet RPC facade. It is safe for concurrent use.
//
// Example usage:
//
//	client, err := monerorpc.NewClientBuilder("http://127.0.0.1:18082").
//	    WithAuthentication("monero", "secret").
//	    BuildWalletClient()
//	if err != nil {
//	    return err
//	}
//
//	balance, err := client.GetBalance(ctx, walletrpc.GetBalanceRequest{AccountIndex: 0})
type Client struct {
	rpc *rpc.Client
}

// NewClient wraps an rpc.Client. The rpc.Client should classify errors with
// ErrorRules, see NewClassifier.
func NewClient(c *rpc.Client) *Client {
	return &Client{rpc: c}
}

// RPC returns the underlying rpc.Client, e.g. to change headers or credentials.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

// Invoke calls an arbitrary wallet method, for methods this facade has no
// typed wrapper for.
func (c *Client) Invoke(ctx context.Context, method string, params, result any) error {
	return c.rpc.Invoke(ctx, method, params, result)
}

// GetBalance returns the balance of an account.
func (c *Client) GetBalance(ctx context.Context, req GetBalanceRequest) (GetBalanceResponse, error) {
	return rpc.Call[GetBalanceResponse](ctx, c.rpc, GetBalanceMethod.String(), req)
}

// GetAddress returns the primary address of an account and its subaddresses.
func (c *Client) GetAddress(ctx context.Context, req GetAddressRequest) (GetAddressResponse, error) {
	return rpc.Call[GetAddressResponse](ctx, c.rpc, GetAddressMethod.String(), req)
}

// GetHeight returns the height the wallet has synchronised to.
func (c *Client) GetHeight(ctx context.Context) (GetHeightResponse, error) {
	return rpc.Call[GetHeightResponse](ctx, c.rpc, GetHeightMethod.String(), nil)
}

// Transfer sends monero to the request's destinations.
//
// An empty destination list is sent as an empty array and rejected by the
// wallet with rpc.ErrInvalidDestination. An address the wallet cannot parse,
// e.g. one of another network, fails with rpc.ErrInvalidAddress.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (TransferResponse, error) {
	if req.Destinations == nil {
		req.Destinations = []monero.Recipient{}
	}
	return rpc.Call[TransferResponse](ctx, c.rpc, TransferMethod.String(), req)
}

// TransferTo is Transfer with default options.
func (c *Client) TransferTo(ctx context.Context, recipients ...monero.Recipient) (TransferResponse, error) {
	return c.Transfer(ctx, TransferRequest{Destinations: recipients})
}

// MakeURI builds a monero: payment URI.
func (c *Client) MakeURI(ctx context.Context, req MakeURIRequest) (MakeURIResponse, error) {
	return rpc.Call[MakeURIResponse](ctx, c.rpc, MakeURIMethod.String(), req)
}

// ParseURI splits a monero: payment URI into its parts.
func (c *Client) ParseURI(ctx context.Context, uri string) (ParseURIResponse, error) {
	return rpc.Call[ParseURIResponse](ctx, c.rpc, ParseURIMethod.String(), ParseURIRequest{URI: uri})
}

// Refresh rescans the blockchain from StartHeight, or from the wallet's
// current height when it is zero.
func (c *Client) Refresh(ctx context.Context, req RefreshRequest) (RefreshResponse, error) {
	return rpc.Call[RefreshResponse](ctx, c.rpc, RefreshMethod.String(), req)
}

// GetTransfers lists the wallet's transfers of the selected kinds.
func (c *Client) GetTransfers(ctx context.Context, req GetTransfersRequest) (GetTransfersResponse, error) {
	return rpc.Call[GetTransfersResponse](ctx, c.rpc, GetTransfersMethod.String(), req)
}

// CreateWallet creates a new wallet file and opens it.
func (c *Client) CreateWallet(ctx context.Context, req CreateWalletRequest) error {
	if req.Language == "" {
		req.Language = "English"
	}
	return c.rpc.Invoke(ctx, CreateWalletMethod.String(), req, nil)
}

// OpenWallet opens an existing wallet file.
func (c *Client) OpenWallet(ctx context.Context, req OpenWalletRequest) error {
	return c.rpc.Invoke(ctx, OpenWalletMethod.String(), req, nil)
}

// CloseWallet saves and closes the current wallet.
func (c *Client) CloseWallet(ctx context.Context) error {
	return c.rpc.Invoke(ctx, CloseWalletMethod.String(), nil, nil)
}

// RestoreDeterministicWallet recreates a wallet from a mnemonic seed.
func (c *Client) RestoreDeterministicWallet(ctx context.Context, req RestoreDeterministicWalletRequest) (RestoreDeterministicWalletResponse, error) {
	return rpc.Call[RestoreDeterministicWalletResponse](ctx, c.rpc, RestoreDeterministicWalletMethod.String(), req)
}

// GetVersion returns the RPC version of the wallet.
func (c *Client) GetVersion(ctx context.Context) (GetVersionResponse, error) {
	return rpc.Call[GetVersionResponse](ctx, c.rpc, GetVersionMethod.String(), nil)
}
