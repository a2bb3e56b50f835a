// Command monerorpc queries monero-wallet-rpc and monerod from the shell.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	monerorpc "github.com/refring/monero-rpc-go"
	"github.com/refring/monero-rpc-go/pkg/daemonrpc"
	"github.com/refring/monero-rpc-go/pkg/log"
	"github.com/refring/monero-rpc-go/pkg/walletrpc"
)

const usage = `usage: monerorpc <command> [args]

commands:
  balance [account]                  wallet balance of an account
  height                             daemon chain height
  fee-estimate                       daemon fee estimate per priority
  sync-info                          daemon synchronization peers
  version                            daemon version
  call <wallet|daemon> <method> [json]  raw JSON-RPC call
  other <path> [json]                raw call to a daemon endpoint

configuration is read from MONERO_RPC_* environment variables and
$MONERO_RPC_CONFIG_DIR/.env`

var errUsage = errors.New("invalid usage")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	conf, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.NewZapLogger(conf.Log).WithName("monerorpc")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runCli(ctx, conf, logger, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, usage)
			stop()
			os.Exit(2)
		}
		logger.Error("command failed", "command", os.Args[1], "error", err)
		stop()
		os.Exit(1)
	}
}

func newBuilder(conf *Config, logger log.Logger) *monerorpc.ClientBuilder {
	b := monerorpc.NewClientBuilder(conf.URL).
		WithLogger(logger).
		WithTimeout(conf.Timeout).
		WithRateLimit(conf.RateLimit, 1)
	if conf.Username != "" {
		b = b.WithAuthentication(conf.Username, conf.Password)
	}
	return b
}

func runCli(ctx context.Context, conf *Config, logger log.Logger, name string, args []string, out io.Writer) error {
	b := newBuilder(conf, logger)

	switch name {
	case "balance":
		var account uint32
		if len(args) > 0 {
			n, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("%w: account %q: %v", errUsage, args[0], err)
			}
			account = uint32(n)
		}
		wallet, err := b.BuildWalletClient()
		if err != nil {
			return err
		}
		res, err := wallet.GetBalance(ctx, walletrpc.GetBalanceRequest{AccountIndex: account})
		if err != nil {
			return err
		}
		renderBalance(out, account, res)
	case "height":
		daemon, err := b.BuildDaemonOtherClient()
		if err != nil {
			return err
		}
		res, err := daemon.GetHeight(ctx)
		if err != nil {
			return err
		}
		renderHeight(out, res)
	case "fee-estimate":
		daemon, err := b.BuildDaemonClient()
		if err != nil {
			return err
		}
		res, err := daemon.GetFeeEstimate(ctx, daemonrpc.GetFeeEstimateRequest{})
		if err != nil {
			return err
		}
		renderFeeEstimate(out, res)
	case "sync-info":
		daemon, err := b.BuildDaemonClient()
		if err != nil {
			return err
		}
		res, err := daemon.SyncInfo(ctx)
		if err != nil {
			return err
		}
		renderSyncInfo(out, res)
	case "version":
		daemon, err := b.BuildDaemonClient()
		if err != nil {
			return err
		}
		res, err := daemon.GetVersion(ctx)
		if err != nil {
			return err
		}
		renderVersion(out, res)
	case "call":
		if len(args) < 2 {
			return fmt.Errorf("%w: call needs a client type and a method", errUsage)
		}
		t, err := monerorpc.ParseClientType(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		params, err := rawParams(args[2:])
		if err != nil {
			return err
		}
		facade, err := b.Build(t)
		if err != nil {
			return err
		}
		var result json.RawMessage
		if t == monerorpc.DaemonOtherClient {
			err = facade.RPC().InvokeOther(ctx, args[1], params, &result)
		} else {
			err = facade.RPC().Invoke(ctx, args[1], params, &result)
		}
		if err != nil {
			return err
		}
		return printJSON(out, result)
	case "other":
		if len(args) < 1 {
			return fmt.Errorf("%w: other needs a path", errUsage)
		}
		params, err := rawParams(args[1:])
		if err != nil {
			return err
		}
		daemon, err := b.BuildDaemonOtherClient()
		if err != nil {
			return err
		}
		var result json.RawMessage
		if err := daemon.Invoke(ctx, args[0], params, &result); err != nil {
			return err
		}
		return printJSON(out, result)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	return nil
}

// rawParams returns the optional JSON params argument. Without one the
// result is nil so the request carries no params.
func rawParams(args []string) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if !json.Valid([]byte(args[0])) {
		return nil, fmt.Errorf("%w: params are not valid JSON", errUsage)
	}
	return json.RawMessage(args[0]), nil
}
