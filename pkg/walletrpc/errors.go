package walletrpc

import "github.com/refring/monero-rpc-go/pkg/rpc"

// ErrorRules maps monero-wallet-rpc error codes onto rpc sentinels.
//
// The wallet reports both a malformed address and a bad destination list
// with code -2, so the message decides between ErrInvalidAddress and
// ErrInvalidDestination.
var ErrorRules = []rpc.Rule{
	rpc.CodeMessageRule(-2, "Invalid destination address", rpc.ErrInvalidAddress),
	rpc.CodeMessageRule(-2, "Failed to parse address", rpc.ErrInvalidAddress),
	rpc.CodeRule(-2, rpc.ErrInvalidDestination),
	rpc.CodeRule(-3, rpc.ErrDaemonBusy),
	rpc.CodeRule(-5, rpc.ErrInvalidPaymentID),
	rpc.CodeRule(-13, rpc.ErrWalletNotOpen),
	rpc.CodeRule(-17, rpc.ErrInsufficientFunds),
	rpc.CodeRule(-20, rpc.ErrInvalidDestination),
	rpc.CodeRule(-21, rpc.ErrWalletAlreadyExists),
	rpc.CodeRule(-22, rpc.ErrInvalidPassword),
	rpc.CodeRule(-29, rpc.ErrWatchOnly),
	rpc.CodeRule(-37, rpc.ErrInsufficientFunds),
	rpc.CodeRule(-38, rpc.ErrNoDaemonConnection),
	rpc.MessageRule("No destinations for this transfer", rpc.ErrInvalidDestination),
	rpc.MessageRule("not enough money", rpc.ErrInsufficientFunds),
	rpc.MessageRule("not enough unlocked money", rpc.ErrInsufficientFunds),
	rpc.MessageRule("wallet is locked", rpc.ErrWalletLocked),
	rpc.MessageRule("No wallet file", rpc.ErrWalletNotOpen),
}

// NewClassifier returns a classifier for wallet RPC errors.
func NewClassifier() *rpc.Classifier {
	return rpc.NewClassifier(ErrorRules...)
}
