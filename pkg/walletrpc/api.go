// Package walletrpc is a typed client for the monero-wallet-rpc JSON-RPC API.
//
// All amounts are in piconero (monero.Amount).
package walletrpc

import (
	"github.com/refring/monero-rpc-go/pkg/monero"
)

// ============================================================================
// RPC Method Constants
// ============================================================================

// Method is a wallet RPC method name.
type Method string

const (
	GetBalanceMethod                 Method = "get_balance"
	GetAddressMethod                 Method = "get_address"
	GetHeightMethod                  Method = "get_height"
	TransferMethod                   Method = "transfer"
	MakeURIMethod                    Method = "make_uri"
	ParseURIMethod                   Method = "parse_uri"
	RefreshMethod                    Method = "refresh"
	GetTransfersMethod               Method = "get_transfers"
	CreateWalletMethod               Method = "create_wallet"
	OpenWalletMethod                 Method = "open_wallet"
	CloseWalletMethod                Method = "close_wallet"
	RestoreDeterministicWalletMethod Method = "restore_deterministic_wallet"
	GetVersionMethod                 Method = "get_version"
)

// String returns the method name.
func (m Method) String() string {
	return string(m)
}

// ============================================================================
// Balance and addresses
// ============================================================================

// GetBalanceRequest selects the account whose balance is returned.
type GetBalanceRequest struct {
	AccountIndex   uint32   `json:"account_index"`
	AddressIndices []uint32 `json:"address_indices,omitempty"`
	AllAccounts    bool     `json:"all_accounts,omitempty"`
	Strict         bool     `json:"strict,omitempty"`
}

// GetBalanceResponse is the balance of one account.
type GetBalanceResponse struct {
	Balance              monero.Amount       `json:"balance"`
	UnlockedBalance      monero.Amount       `json:"unlocked_balance,omitempty"`
	MultisigImportNeeded bool                `json:"multisig_import_needed,omitempty"`
	TimeToUnlock         uint64              `json:"time_to_unlock,omitempty"`
	BlocksToUnlock       uint64              `json:"blocks_to_unlock"`
	PerSubaddress        []SubaddressBalance `json:"per_subaddress,omitempty"`
}

// SubaddressBalance is the balance of one subaddress.
type SubaddressBalance struct {
	AccountIndex      uint32        `json:"account_index,omitempty"`
	AddressIndex      uint32        `json:"address_index"`
	Address           string        `json:"address"`
	Balance           monero.Amount `json:"balance"`
	UnlockedBalance   monero.Amount `json:"unlocked_balance"`
	Label             string        `json:"label,omitempty"`
	NumUnspentOutputs uint64        `json:"num_unspent_outputs,omitempty"`
	TimeToUnlock      uint64        `json:"time_to_unlock,omitempty"`
	BlocksToUnlock    uint64        `json:"blocks_to_unlock,omitempty"`
}

// GetAddressRequest selects an account and optionally some of its subaddresses.
type GetAddressRequest struct {
	AccountIndex uint32   `json:"account_index"`
	AddressIndex []uint32 `json:"address_index,omitempty"`
}

type GetAddressResponse struct {
	Address   string        `json:"address"`
	Addresses []AddressInfo `json:"addresses"`
}

type AddressInfo struct {
	Address      string `json:"address"`
	Label        string `json:"label,omitempty"`
	AddressIndex uint32 `json:"address_index"`
	Used         bool   `json:"used,omitempty"`
}

type GetHeightResponse struct {
	Height uint64 `json:"height"`
}

// ============================================================================
// Transfers
// ============================================================================

// Priority is the fee priority of a transfer.
type Priority uint32

const (
	PriorityDefault Priority = iota
	PriorityUnimportant
	PriorityNormal
	PriorityElevated
	PriorityPriority
)

// TransferRequest sends monero to one or more recipients.
type TransferRequest struct {
	Destinations   []monero.Recipient `json:"destinations"`
	AccountIndex   uint32             `json:"account_index,omitempty"`
	SubaddrIndices []uint32           `json:"subaddr_indices,omitempty"`
	Priority       Priority           `json:"priority,omitempty"`
	RingSize       uint32             `json:"ring_size,omitempty"`
	UnlockTime     uint64             `json:"unlock_time,omitempty"`
	PaymentID      string             `json:"payment_id,omitempty"`
	GetTxKey       bool               `json:"get_tx_key,omitempty"`
	DoNotRelay     bool               `json:"do_not_relay,omitempty"`
	GetTxHex       bool               `json:"get_tx_hex,omitempty"`
	GetTxMetadata  bool               `json:"get_tx_metadata,omitempty"`
}

type TransferResponse struct {
	Amount        monero.Amount `json:"amount"`
	Fee           monero.Amount `json:"fee"`
	TxHash        string        `json:"tx_hash"`
	TxKey         string        `json:"tx_key,omitempty"`
	TxBlob        string        `json:"tx_blob,omitempty"`
	TxMetadata    string        `json:"tx_metadata,omitempty"`
	MultisigTxset string        `json:"multisig_txset,omitempty"`
	UnsignedTxset string        `json:"unsigned_txset,omitempty"`
	Weight        uint64        `json:"weight,omitempty"`
}

// GetTransfersRequest selects which kinds of transfers are returned.
type GetTransfersRequest struct {
	In             bool     `json:"in,omitempty"`
	Out            bool     `json:"out,omitempty"`
	Pending        bool     `json:"pending,omitempty"`
	Failed         bool     `json:"failed,omitempty"`
	Pool           bool     `json:"pool,omitempty"`
	FilterByHeight bool     `json:"filter_by_height,omitempty"`
	MinHeight      uint64   `json:"min_height,omitempty"`
	MaxHeight      uint64   `json:"max_height,omitempty"`
	AccountIndex   uint32   `json:"account_index,omitempty"`
	SubaddrIndices []uint32 `json:"subaddr_indices,omitempty"`
	AllAccounts    bool     `json:"all_accounts,omitempty"`
}

type GetTransfersResponse struct {
	In      []TransferEntry `json:"in,omitempty"`
	Out     []TransferEntry `json:"out,omitempty"`
	Pending []TransferEntry `json:"pending,omitempty"`
	Failed  []TransferEntry `json:"failed,omitempty"`
	Pool    []TransferEntry `json:"pool,omitempty"`
}

// TransferEntry is one transfer as listed by get_transfers.
type TransferEntry struct {
	TxID            string             `json:"txid"`
	Type            string             `json:"type"`
	Amount          monero.Amount      `json:"amount"`
	Fee             monero.Amount      `json:"fee,omitempty"`
	Height          uint64             `json:"height"`
	Timestamp       uint64             `json:"timestamp,omitempty"`
	Address         string             `json:"address,omitempty"`
	PaymentID       string             `json:"payment_id,omitempty"`
	Confirmations   uint64             `json:"confirmations,omitempty"`
	UnlockTime      uint64             `json:"unlock_time,omitempty"`
	Locked          bool               `json:"locked,omitempty"`
	DoubleSpendSeen bool               `json:"double_spend_seen,omitempty"`
	Note            string             `json:"note,omitempty"`
	SubaddrIndex    *SubaddressIndex   `json:"subaddr_index,omitempty"`
	Destinations    []monero.Recipient `json:"destinations,omitempty"`
}

type SubaddressIndex struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
}

// ============================================================================
// Payment URIs
// ============================================================================

// PaymentURI is the content of a monero: payment URI. Only Address is required.
type PaymentURI struct {
	Address       string        `json:"address"`
	Amount        monero.Amount `json:"amount,omitempty"`
	PaymentID     string        `json:"payment_id,omitempty"`
	RecipientName string        `json:"recipient_name,omitempty"`
	TxDescription string        `json:"tx_description,omitempty"`
}

type MakeURIRequest = PaymentURI

type MakeURIResponse struct {
	URI string `json:"uri"`
}

type ParseURIRequest struct {
	URI string `json:"uri"`
}

type ParseURIResponse struct {
	URI PaymentURI `json:"uri"`
}

// ============================================================================
// Wallet files
// ============================================================================

type RefreshRequest struct {
	StartHeight uint64 `json:"start_height,omitempty"`
}

type RefreshResponse struct {
	BlocksFetched uint64 `json:"blocks_fetched"`
	ReceivedMoney bool   `json:"received_money"`
}

type CreateWalletRequest struct {
	Filename string `json:"filename"`
	Password string `json:"password,omitempty"`
	Language string `json:"language"`
}

type OpenWalletRequest struct {
	Filename string `json:"filename"`
	Password string `json:"password,omitempty"`
}

// RestoreDeterministicWalletRequest recreates a wallet from its mnemonic seed.
type RestoreDeterministicWalletRequest struct {
	Filename        string `json:"filename"`
	Password        string `json:"password"`
	Seed            string `json:"seed"`
	RestoreHeight   uint64 `json:"restore_height,omitempty"`
	Language        string `json:"language,omitempty"`
	SeedOffset      string `json:"seed_offset,omitempty"`
	AutosaveCurrent *bool  `json:"autosave_current,omitempty"`
}

type RestoreDeterministicWalletResponse struct {
	Address       string `json:"address"`
	Info          string `json:"info"`
	Seed          string `json:"seed"`
	WasDeprecated bool   `json:"was_deprecated,omitempty"`
}

type GetVersionResponse struct {
	Version uint32 `json:"version"`
	Release bool   `json:"release,omitempty"`
}

// Major returns the major part of the packed version number.
func (r GetVersionResponse) Major() uint32 {
	return r.Version >> 16
}

// Minor returns the minor part of the packed version number.
func (r GetVersionResponse) Minor() uint32 {
	return r.Version & 0xffff
}
