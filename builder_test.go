package monerorpc_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	monerorpc "github.com/refring/monero-rpc-go"
	"github.com/refring/monero-rpc-go/pkg/daemonother"
	"github.com/refring/monero-rpc-go/pkg/daemonrpc"
	"github.com/refring/monero-rpc-go/pkg/rpc"
	"github.com/refring/monero-rpc-go/pkg/walletrpc"
)

func failingDiscovery(time.Duration) (rpc.HTTPDoer, error) {
	return nil, errors.New("no http client available")
}

func TestClientBuilder_Build(t *testing.T) {
	t.Parallel()

	tests := []struct {
		clientType monerorpc.ClientType
		want       any
	}{
		{clientType: monerorpc.WalletClient, want: &walletrpc.Client{}},
		{clientType: monerorpc.DaemonClient, want: &daemonrpc.Client{}},
		{clientType: monerorpc.DaemonOtherClient, want: &daemonother.Client{}},
	}

	for _, tt := range tests {
		t.Run(tt.clientType.String(), func(t *testing.T) {
			t.Parallel()

			facade, err := monerorpc.NewClientBuilder("http://127.0.0.1:18081").Build(tt.clientType)
			require.NoError(t, err)
			assert.IsType(t, tt.want, facade)
			assert.Equal(t, "http://127.0.0.1:18081", facade.RPC().URL())
		})
	}

	_, err := monerorpc.NewClientBuilder("http://127.0.0.1:18081").Build(monerorpc.ClientType(7))
	assert.ErrorIs(t, err, rpc.ErrConfiguration)
}

func TestClientBuilder_Headers(t *testing.T) {
	t.Parallel()

	client, err := monerorpc.NewClientBuilder("http://127.0.0.1:18082").
		WithHTTPHeader("X-Api-Key", "first").
		WithHTTPHeader("X-Node", "stagenet").
		WithHTTPHeader("X-Api-Key", "second").
		BuildWalletClient()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"X-Api-Key": "second", "X-Node": "stagenet"}, client.RPC().Headers())
}

func TestClientBuilder_Configuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder *monerorpc.ClientBuilder
		message string
	}{
		{
			name:    "failing discovery",
			builder: monerorpc.NewClientBuilder("http://127.0.0.1:18081").WithTransportDiscovery(failingDiscovery),
			message: "http transport",
		},
		{
			name:    "discovery disabled",
			builder: monerorpc.NewClientBuilder("http://127.0.0.1:18081").WithTransportDiscovery(nil),
			message: "http transport",
		},
		{
			name:    "empty url",
			builder: monerorpc.NewClientBuilder(""),
			message: "URL",
		},
		{
			name:    "unsupported scheme",
			builder: monerorpc.NewClientBuilder("ftp://127.0.0.1:18081"),
			message: "URL",
		},
		{
			name:    "negative timeout",
			builder: monerorpc.NewClientBuilder("http://127.0.0.1:18081").WithTimeout(-time.Second),
			message: "Timeout",
		},
		{
			name:    "negative rate",
			builder: monerorpc.NewClientBuilder("http://127.0.0.1:18081").WithRateLimit(-1, 1),
			message: "RateLimit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, clientType := range []monerorpc.ClientType{monerorpc.WalletClient, monerorpc.DaemonClient, monerorpc.DaemonOtherClient} {
				facade, err := tt.builder.Build(clientType)
				require.ErrorIs(t, err, rpc.ErrConfiguration)
				assert.Nil(t, facade)
				assert.ErrorContains(t, err, tt.message)

				rpcErr, ok := rpc.AsError(err)
				require.True(t, ok)
				assert.Equal(t, rpc.KindConfiguration, rpcErr.Kind)
			}
		})
	}
}

func TestClientBuilder_ExplicitClientSkipsDiscovery(t *testing.T) {
	t.Parallel()

	client, err := monerorpc.NewClientBuilder("http://127.0.0.1:18081").
		WithTransportDiscovery(failingDiscovery).
		WithHTTPClient(http.DefaultClient).
		BuildDaemonClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientBuilder_NoNetworkOnBuild(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	t.Cleanup(srv.Close)

	_, err := monerorpc.NewClientBuilder(srv.URL).WithAuthentication("monero", "secret").BuildWalletClient()
	require.NoError(t, err)
	assert.Zero(t, requests.Load())
}

func TestClientBuilder_EndToEnd(t *testing.T) {
	t.Parallel()

	var authorized atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.Header().Set("WWW-Authenticate", `Digest qop="auth",algorithm=MD5,realm="monero-rpc",nonce="1a2b3c"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		authorized.Add(1)
		assert.Equal(t, "stagenet", r.Header.Get("X-Node"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"0","jsonrpc":"2.0","result":{"balance":59,"blocks_to_unlock":59}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := monerorpc.NewClientBuilder(srv.URL).
		WithHTTPClient(srv.Client()).
		WithHTTPHeader("X-Node", "stagenet").
		WithAuthentication("monero", "secret").
		WithTimeout(5*time.Second).
		WithRateLimit(100, 10).
		BuildWalletClient()
	require.NoError(t, err)

	res, err := client.GetBalance(context.Background(), walletrpc.GetBalanceRequest{AccountIndex: 0})
	require.NoError(t, err)
	assert.EqualValues(t, 59, res.Balance)
	assert.EqualValues(t, 59, res.BlocksToUnlock)
	assert.EqualValues(t, 1, authorized.Load())
}

func TestDiscoverHTTPClient(t *testing.T) {
	t.Parallel()

	doer, err := monerorpc.DiscoverHTTPClient(3 * time.Second)
	require.NoError(t, err)

	client, ok := doer.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, client.Timeout)
	assert.NotSame(t, http.DefaultTransport, client.Transport)
}

func TestParseClientType(t *testing.T) {
	t.Parallel()

	for _, ct := range []monerorpc.ClientType{monerorpc.WalletClient, monerorpc.DaemonClient, monerorpc.DaemonOtherClient} {
		got, err := monerorpc.ParseClientType(ct.String())
		require.NoError(t, err)
		assert.Equal(t, ct, got)
	}

	_, err := monerorpc.ParseClientType("miner")
	assert.Error(t, err)
}
