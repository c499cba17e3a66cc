// Package currency defines the contract with the chain's currency
// ledger. Balance bookkeeping lives outside this module; Patronage
// only moves funds through the Transferer interface and queries the
// existential deposit below which accounts are reaped.
package currency

import (
	"context"
	"errors"

	"github.com/spacefold/patronage/types"
)

// Sentinel errors surfaced by Transferer implementations.
var (
	// ErrInsufficientFunds is returned when the payer cannot cover the
	// transfer amount.
	ErrInsufficientFunds = errors.New("currency: insufficient funds")

	// ErrWouldReapAccount is returned by a keep-alive transfer that
	// would drop the payer below the existential deposit.
	ErrWouldReapAccount = errors.New("currency: transfer would reap payer account")
)

// Transferer is the external currency-transfer primitive.
type Transferer interface {
	// Transfer moves amount from one account to another. With keepAlive
	// set, the transfer fails with ErrWouldReapAccount rather than
	// leaving the payer below the existential deposit.
	Transfer(ctx context.Context, from, to types.AccountID, amount types.Money, keepAlive bool) error

	// MinimumBalance returns the existential deposit: the smallest
	// balance an account may hold without being reaped.
	MinimumBalance(ctx context.Context) (types.Money, error)
}
