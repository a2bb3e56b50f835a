package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refring/monero-rpc-go/pkg/log"
	"github.com/refring/monero-rpc-go/pkg/rpc"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfig(t *testing.T) {
	t.Run("dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		dotEnv := "MONERO_RPC_URL=http://127.0.0.1:18082\nMONERO_RPC_USERNAME=alice\nMONERO_RPC_PASSWORD=secret\nMONERO_RPC_TIMEOUT=5s\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotEnv), 0o600))

		t.Setenv(configDirPathEnv, dir)
		for _, key := range []string{"MONERO_RPC_URL", "MONERO_RPC_USERNAME", "MONERO_RPC_PASSWORD", "MONERO_RPC_TIMEOUT"} {
			unsetEnv(t, key)
		}

		conf, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:18082", conf.URL)
		assert.Equal(t, "alice", conf.Username)
		assert.Equal(t, "secret", conf.Password)
		assert.Equal(t, 5*time.Second, conf.Timeout)
		assert.Equal(t, log.LevelInfo, conf.Log.Level)
	})

	t.Run("environment wins over dotenv", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MONERO_RPC_URL=http://from-file:1\n"), 0o600))

		t.Setenv(configDirPathEnv, dir)
		t.Setenv("MONERO_RPC_URL", "http://from-env:2")
		unsetEnv(t, "MONERO_RPC_TIMEOUT")

		conf, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://from-env:2", conf.URL)
		assert.Equal(t, 30*time.Second, conf.Timeout)
	})

	t.Run("missing url", func(t *testing.T) {
		t.Setenv(configDirPathEnv, t.TempDir())
		unsetEnv(t, "MONERO_RPC_URL")

		_, err := LoadConfig()
		require.Error(t, err)
	})
}

// setupNode serves both the JSON-RPC endpoint and the daemon's other endpoints.
func setupNode(t *testing.T, replies map[string]string) *Config {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.Path == "/json_rpc" {
			var req struct {
				Method string `json:"method"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			key = req.Method
		}

		reply, ok := replies[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	return &Config{URL: srv.URL, Timeout: 5 * time.Second}
}

func TestRunCli(t *testing.T) {
	conf := setupNode(t, map[string]string{
		"get_balance":      `{"jsonrpc":"2.0","id":"0","result":{"balance":59,"unlocked_balance":59,"blocks_to_unlock":0,"per_subaddress":[{"address_index":0,"address":"5Aa","balance":59,"unlocked_balance":59}]}}`,
		"get_fee_estimate": `{"jsonrpc":"2.0","id":"0","result":{"fee":20000,"fees":[20000,80000,320000,4000000],"quantization_mask":10000,"status":"OK"}}`,
		"get_version":      `{"jsonrpc":"2.0","id":"0","result":{"version":196621,"release":true,"status":"OK"}}`,
		"sync_info":        `{"jsonrpc":"2.0","id":"0","result":{"height":3100,"target_height":3200,"next_needed_pruning_seed":0,"overview":"[]","peers":[{"info":{"address":"10.0.0.7:18080","host":"10.0.0.7","height":3150,"state":"normal"}}],"status":"OK"}}`,
		"/get_height":      `{"hash":"7a9c","height":3100,"status":"OK"}`,
	})
	ctx := context.Background()
	logger := log.NewNoopLogger()

	tcs := []struct {
		name     string
		args     []string
		contains []string
	}{
		{name: "balance", contains: []string{"0.000000000059", "all"}},
		{name: "height", contains: []string{"3100", "7a9c"}},
		{name: "fee-estimate", contains: []string{"slow", "fastest", "0.000004000000"}},
		{name: "sync-info", contains: []string{"10.0.0.7:18080", "3150", "normal"}},
		{name: "version", contains: []string{"196621", "3", "13"}},
		{name: "call", args: []string{"daemon", "get_version"}, contains: []string{`"version": 196621`}},
		{name: "call", args: []string{"daemon-other", "get_height"}, contains: []string{`"hash": "7a9c"`}},
		{name: "other", args: []string{"get_height"}, contains: []string{`"height": 3100`}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runCli(ctx, conf, logger, tc.name, tc.args, &out))
			for _, s := range tc.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestRunCliErrors(t *testing.T) {
	conf := setupNode(t, map[string]string{
		"get_balance": `{"jsonrpc":"2.0","id":"0","error":{"code":-13,"message":"No wallet file"}}`,
	})
	ctx := context.Background()
	logger := log.NewNoopLogger()

	t.Run("usage", func(t *testing.T) {
		for _, args := range [][]string{
			{"nope"},
			{"balance", "minus-one"},
			{"call", "wallet"},
			{"call", "miner", "start_mining"},
			{"call", "wallet", "get_balance", "{not json"},
			{"other"},
		} {
			err := runCli(ctx, conf, logger, args[0], args[1:], &bytes.Buffer{})
			assert.ErrorIs(t, err, errUsage, "args %v", args)
		}
	})

	t.Run("rpc error", func(t *testing.T) {
		err := runCli(ctx, conf, logger, "balance", nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, rpc.ErrWalletNotOpen)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		err := runCli(ctx, conf, logger, "height", nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, rpc.ErrTransport)
	})

	t.Run("invalid url", func(t *testing.T) {
		err := runCli(ctx, &Config{URL: "not a url"}, logger, "version", nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, rpc.ErrConfiguration)
	})
}
