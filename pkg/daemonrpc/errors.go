package daemonrpc

import "github.com/refring/monero-rpc-go/pkg/rpc"

// ErrorRules maps monerod error codes onto rpc sentinels. monerod shares
// numeric codes with the wallet for unrelated conditions, e.g. -13.
var ErrorRules = []rpc.Rule{
	rpc.CodeRule(-2, rpc.ErrHeightTooBig),
	rpc.CodeRule(-4, rpc.ErrInvalidAddress),
	rpc.CodeRule(-9, rpc.ErrDaemonBusy),
	rpc.CodeRule(-12, rpc.ErrInvalidAddress),
	rpc.CodeRule(-13, rpc.ErrRegtestRequired),
	rpc.MessageRule("BUSY", rpc.ErrDaemonBusy),
	rpc.MessageRule("Regtest required", rpc.ErrRegtestRequired),
}

// NewClassifier returns a classifier for daemon errors.
func NewClassifier() *rpc.Classifier {
	return rpc.NewClassifier(ErrorRules...)
}

// CheckStatus turns a status field other than "OK" into an error classified
// with c.
func CheckStatus(c *rpc.Classifier, status string) error {
	if status == StatusOK {
		return nil
	}
	return c.ClassifyStatus(status)
}
