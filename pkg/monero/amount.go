// Package monero holds value types shared by the wallet and daemon clients.
package monero

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimals is the number of decimal places of one XMR.
const Decimals = 12

// Amount is a quantity of Monero in piconero, the atomic unit used on the wire.
type Amount uint64

const (
	Piconero Amount = 1
	XMR      Amount = 1_000_000_000_000
)

var (
	ErrNegativeAmount  = errors.New("amount is negative")
	ErrAmountPrecision = errors.New("amount has more than 12 decimal places")
	ErrAmountOverflow  = errors.New("amount does not fit in 64 bits")
)

var maxAmount = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// FromXMR converts a decimal XMR value to piconero.
func FromXMR(xmr decimal.Decimal) (Amount, error) {
	if xmr.IsNegative() {
		return 0, ErrNegativeAmount
	}

	pico := xmr.Shift(Decimals)
	if !pico.Equal(pico.Truncate(0)) {
		return 0, ErrAmountPrecision
	}
	if pico.GreaterThan(maxAmount) {
		return 0, ErrAmountOverflow
	}
	return Amount(pico.BigInt().Uint64()), nil
}

// ParseXMR parses a decimal string such as "0.25" as XMR.
func ParseXMR(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse xmr amount %q: %w", s, err)
	}
	return FromXMR(d)
}

// XMR returns the amount in XMR.
func (a Amount) XMR() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -Decimals)
}

// String formats the amount in XMR with all 12 decimal places.
func (a Amount) String() string {
	return a.XMR().StringFixed(Decimals)
}

// Recipient is one destination of a transfer.
type Recipient struct {
	Address string `json:"address"`
	Amount  Amount `json:"amount"`
}
