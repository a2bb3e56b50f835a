package rpc_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refring/monero-rpc-go/pkg/rpc"
)

func testClassifier() *rpc.Classifier {
	return rpc.NewClassifier(
		rpc.CodeRule(-2, rpc.ErrInvalidDestination),
		rpc.CodeMessageRule(-2, "Invalid destination address", rpc.ErrInvalidAddress),
		rpc.CodeRule(-13, rpc.ErrWalletNotOpen),
		rpc.MessageRule("not enough money", rpc.ErrInsufficientFunds),
	)
}

func code(c int) *int { return &c }

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		code     *int
		message  string
		kind     rpc.Kind
		sentinel error
	}{
		{
			name:     "code and message rule wins over bare code rule",
			status:   http.StatusOK,
			code:     code(-2),
			message:  "Invalid destination address",
			kind:     rpc.KindApplication,
			sentinel: rpc.ErrInvalidAddress,
		},
		{
			name:     "message match is case-insensitive",
			status:   http.StatusOK,
			code:     code(-2),
			message:  "WALLET_RPC_ERROR_CODE_WRONG_ADDRESS: invalid destination ADDRESS",
			kind:     rpc.KindApplication,
			sentinel: rpc.ErrInvalidAddress,
		},
		{
			name:     "bare code rule",
			status:   http.StatusOK,
			code:     code(-2),
			message:  "No destinations for this transfer",
			kind:     rpc.KindApplication,
			sentinel: rpc.ErrInvalidDestination,
		},
		{
			name:     "code rule before message rule",
			status:   http.StatusOK,
			code:     code(-13),
			message:  "not enough money",
			kind:     rpc.KindApplication,
			sentinel: rpc.ErrWalletNotOpen,
		},
		{
			name:     "message rule for unknown code",
			status:   http.StatusOK,
			code:     code(-4),
			message:  "transfer failed: not enough money",
			kind:     rpc.KindApplication,
			sentinel: rpc.ErrInsufficientFunds,
		},
		{
			name:     "standard code",
			status:   http.StatusOK,
			code:     code(-32601),
			message:  "Method not found",
			kind:     rpc.KindApplication,
			sentinel: rpc.ErrMethodNotFound,
		},
		{
			name:     "unknown code",
			status:   http.StatusOK,
			code:     code(-99),
			message:  "something odd",
			kind:     rpc.KindRPC,
			sentinel: rpc.ErrRPC,
		},
		{
			name:     "http status without error object",
			status:   http.StatusInternalServerError,
			message:  "Internal Server Error",
			kind:     rpc.KindTransport,
			sentinel: rpc.ErrTransport,
		},
		{
			name:     "unauthorized without error object",
			status:   http.StatusUnauthorized,
			kind:     rpc.KindAuthentication,
			sentinel: rpc.ErrAuthentication,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := testClassifier().Classify(tt.status, tt.code, tt.message, nil)
			require.NotNil(t, err)
			assert.Equal(t, tt.kind, err.Kind)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, err.Message)
			if tt.code != nil {
				assert.Equal(t, *tt.code, err.Code)
			}
		})
	}
}

func TestClassifier_Sentinels(t *testing.T) {
	t.Parallel()

	err := testClassifier().Classify(http.StatusOK, code(-2), "Invalid destination address", json.RawMessage(`{"index":1}`))

	assert.ErrorIs(t, err, rpc.ErrInvalidAddress)
	assert.ErrorIs(t, err, rpc.ErrKnownApplication)
	assert.NotErrorIs(t, err, rpc.ErrInvalidDestination)
	assert.NotErrorIs(t, err, rpc.ErrRPC)
	assert.JSONEq(t, `{"index":1}`, string(err.Data))
	assert.Equal(t, rpc.ErrInvalidAddress, err.Sentinel())
	assert.Equal(t, "invalid address: Invalid destination address (code -2)", err.Error())

	var target *rpc.Error
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, -2, target.Code)
}

func TestClassifier_ClassifyStatus(t *testing.T) {
	t.Parallel()

	c := rpc.NewClassifier(rpc.MessageRule("busy", rpc.ErrDaemonBusy))

	err := c.ClassifyStatus("BUSY")
	assert.ErrorIs(t, err, rpc.ErrDaemonBusy)

	err = c.ClassifyStatus("Failed")
	assert.ErrorIs(t, err, rpc.ErrStatusNotOK)
	assert.ErrorIs(t, err, rpc.ErrKnownApplication)
	assert.Equal(t, "Failed", err.Message)
}
