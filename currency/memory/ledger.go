// Package memory provides an in-memory currency ledger implementing
// currency.Transferer. It exists for tests and wiring demos; production
// deployments inject the hosting chain's real transfer primitive.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/spacefold/patronage/currency"
	"github.com/spacefold/patronage/types"
)

// Ledger is a map-backed token ledger with existential-deposit
// semantics. Accounts whose balance drops below the minimum are reaped.
type Ledger struct {
	mu       sync.Mutex
	balances map[types.AccountID]int64
	minimum  types.Money
}

// New creates a Ledger with the given existential deposit.
func New(minimum types.Money) *Ledger {
	return &Ledger{
		balances: make(map[types.AccountID]int64),
		minimum:  minimum,
	}
}

// Deposit credits an account. Test setup helper.
func (l *Ledger) Deposit(who types.AccountID, amount types.Money) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[who] += amount.Amount
}

// Balance returns the current balance of an account.
func (l *Ledger) Balance(who types.AccountID) types.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return types.New(l.balances[who], l.minimum.Currency)
}

// Transfer implements currency.Transferer.
func (l *Ledger) Transfer(_ context.Context, from, to types.AccountID, amount types.Money, keepAlive bool) error {
	if amount.IsNegative() {
		return fmt.Errorf("currency: negative transfer amount %s", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances[from]
	if balance < amount.Amount {
		return currency.ErrInsufficientFunds
	}

	remaining := balance - amount.Amount
	if keepAlive && remaining < l.minimum.Amount {
		return currency.ErrWouldReapAccount
	}

	l.balances[from] = remaining
	l.balances[to] += amount.Amount

	if !keepAlive && remaining < l.minimum.Amount {
		// Payer dropped below the existential deposit: reap.
		delete(l.balances, from)
	}

	return nil
}

// MinimumBalance implements currency.Transferer.
func (l *Ledger) MinimumBalance(_ context.Context) (types.Money, error) {
	return l.minimum, nil
}
