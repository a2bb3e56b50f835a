package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/refring/monero-rpc-go/pkg/daemonother"
	"github.com/refring/monero-rpc-go/pkg/daemonrpc"
	"github.com/refring/monero-rpc-go/pkg/monero"
	"github.com/refring/monero-rpc-go/pkg/walletrpc"
)

var feePriorities = []string{"slow", "normal", "fast", "fastest"}

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(header)
	t.AppendSeparator()
	return t
}

func renderBalance(w io.Writer, account uint32, res walletrpc.GetBalanceResponse) {
	t := newTable(w, table.Row{"Account", "Subaddress", "Balance (XMR)", "Unlocked (XMR)", "Blocks to unlock"})
	t.AppendRow(table.Row{account, "all", res.Balance, res.UnlockedBalance, res.BlocksToUnlock})
	for _, sub := range res.PerSubaddress {
		t.AppendRow(table.Row{account, sub.AddressIndex, sub.Balance, sub.UnlockedBalance, sub.BlocksToUnlock})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})
	t.Render()
}

func renderHeight(w io.Writer, res daemonother.GetHeightResponse) {
	t := newTable(w, table.Row{"Height", "Top block hash"})
	t.AppendRow(table.Row{res.Height, res.Hash})
	t.Render()
}

func renderFeeEstimate(w io.Writer, res daemonrpc.GetFeeEstimateResponse) {
	t := newTable(w, table.Row{"Priority", "Fee per byte (XMR)"})
	for i, fee := range res.Fees {
		name := fmt.Sprint(i)
		if i < len(feePriorities) {
			name = feePriorities[i]
		}
		t.AppendRow(table.Row{name, fee})
	}
	if len(res.Fees) == 0 {
		t.AppendRow(table.Row{"default", res.Fee})
	}
	t.AppendFooter(table.Row{"Quantization mask", monero.Amount(res.QuantizationMask)})
	t.Render()
}

func renderSyncInfo(w io.Writer, res daemonrpc.SyncInfoResponse) {
	t := newTable(w, table.Row{"Peer", "Height", "State", "Incoming", "Live time"})
	for _, p := range res.Peers {
		t.AppendRow(table.Row{p.Info.Address, p.Info.Height, p.Info.State, p.Info.Incoming, time.Duration(p.Info.LiveTime) * time.Second})
	}
	t.AppendFooter(table.Row{"Height", res.Height, "Target", res.TargetHeight, ""})
	t.Render()
}

func renderVersion(w io.Writer, res daemonrpc.GetVersionResponse) {
	t := newTable(w, table.Row{"Version", "Major", "Minor", "Release"})
	t.AppendRow(table.Row{res.Version, res.Version >> 16, res.Version & 0xffff, res.Release})
	t.Render()
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format result: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
