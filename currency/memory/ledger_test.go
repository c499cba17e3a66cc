package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/spacefold/patronage/currency"
	"github.com/spacefold/patronage/types"
)

func sub(amount int64) types.Money { return types.New(amount, "sub") }

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	l := New(sub(10))
	l.Deposit("alice", sub(100))

	if err := l.Transfer(ctx, "alice", "bob", sub(40), true); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	if got := l.Balance("alice"); !got.Equal(sub(60)) {
		t.Errorf("alice balance: got %v, want %v", got, sub(60))
	}
	if got := l.Balance("bob"); !got.Equal(sub(40)) {
		t.Errorf("bob balance: got %v, want %v", got, sub(40))
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	l := New(sub(10))
	l.Deposit("alice", sub(30))

	err := l.Transfer(ctx, "alice", "bob", sub(40), true)
	if !errors.Is(err, currency.ErrInsufficientFunds) {
		t.Errorf("got %v, want ErrInsufficientFunds", err)
	}

	// Nothing moved.
	if got := l.Balance("alice"); !got.Equal(sub(30)) {
		t.Errorf("alice balance changed on failed transfer: %v", got)
	}
	if got := l.Balance("bob"); !got.IsZero() {
		t.Errorf("bob balance changed on failed transfer: %v", got)
	}
}

func TestTransferKeepAlive(t *testing.T) {
	ctx := context.Background()
	l := New(sub(10))
	l.Deposit("alice", sub(45))

	// Would leave 5, below the existential deposit of 10.
	err := l.Transfer(ctx, "alice", "bob", sub(40), true)
	if !errors.Is(err, currency.ErrWouldReapAccount) {
		t.Errorf("got %v, want ErrWouldReapAccount", err)
	}

	// Leaving exactly the existential deposit is fine.
	if err := l.Transfer(ctx, "alice", "bob", sub(35), true); err != nil {
		t.Fatalf("Transfer leaving minimum: %v", err)
	}
	if got := l.Balance("alice"); !got.Equal(sub(10)) {
		t.Errorf("alice balance: got %v, want %v", got, sub(10))
	}
}

func TestTransferAllowDeathReaps(t *testing.T) {
	ctx := context.Background()
	l := New(sub(10))
	l.Deposit("alice", sub(45))

	if err := l.Transfer(ctx, "alice", "bob", sub(40), false); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	// Alice dropped below the existential deposit and was reaped.
	if got := l.Balance("alice"); !got.IsZero() {
		t.Errorf("alice should be reaped, balance %v", got)
	}
	if got := l.Balance("bob"); !got.Equal(sub(40)) {
		t.Errorf("bob balance: got %v, want %v", got, sub(40))
	}
}

func TestMinimumBalance(t *testing.T) {
	l := New(sub(7))

	min, err := l.MinimumBalance(context.Background())
	if err != nil {
		t.Fatalf("MinimumBalance: %v", err)
	}
	if !min.Equal(sub(7)) {
		t.Errorf("got %v, want %v", min, sub(7))
	}
}
