// Package rpc implements the JSON-RPC over HTTP core shared by the Monero
// wallet and daemon clients.
//
// The package is organised in layers:
//
//   - the envelope codec builds JSON-RPC 2.0 request bodies from typed
//     parameter structs and decodes response envelopes into typed results,
//     enforcing that every non-omitempty field of the result is present;
//   - the Classifier maps JSON-RPC error objects and HTTP statuses onto the
//     Error taxonomy using an ordered, per-facade rule table;
//   - the Transport performs one HTTP exchange, answering an HTTP Digest
//     challenge when credentials are configured;
//   - the Client ties the layers together behind Invoke, Call and InvokeOther.
//
// Every failure is returned as an *Error. Its Kind tells the broad category
// and the error also matches a sentinel through errors.Is:
//
//	balance, err := rpc.Call[walletrpc.GetBalanceResponse](ctx, client, "get_balance", params)
//	switch {
//	case errors.Is(err, rpc.ErrWalletNotOpen):
//	    // open a wallet first
//	case errors.Is(err, rpc.ErrTransport):
//	    // node unreachable
//	}
//
// The facades in pkg/walletrpc, pkg/daemonrpc and pkg/daemonother build on
// this package and are usually created through the monerorpc ClientBuilder.
package rpc
