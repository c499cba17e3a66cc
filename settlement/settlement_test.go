package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/spacefold/patronage/types"
)

// recordingTransferer captures transfer calls and returns a canned error.
type recordingTransferer struct {
	minimum   types.Money
	err       error
	from, to  types.AccountID
	amount    types.Money
	keepAlive bool
	calls     int
}

func (r *recordingTransferer) Transfer(_ context.Context, from, to types.AccountID, amount types.Money, keepAlive bool) error {
	r.calls++
	r.from, r.to, r.amount, r.keepAlive = from, to, amount, keepAlive
	return r.err
}

func (r *recordingTransferer) MinimumBalance(_ context.Context) (types.Money, error) {
	return r.minimum, nil
}

func TestSettle(t *testing.T) {
	tr := &recordingTransferer{minimum: types.New(1, "sub")}
	s := NewSettler(tr)
	amount := types.New(100, "sub")

	r, err := s.Settle(context.Background(), "alice", "bob", amount)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}

	// Exactly the requested amount moved, keep-alive.
	if tr.calls != 1 {
		t.Fatalf("Transfer calls: got %d, want 1", tr.calls)
	}
	if tr.from != "alice" || tr.to != "bob" {
		t.Errorf("Transfer parties: got %s->%s", tr.from, tr.to)
	}
	if !tr.amount.Equal(amount) {
		t.Errorf("Transfer amount: got %v, want %v", tr.amount, amount)
	}
	if !tr.keepAlive {
		t.Error("settlement transfers must be keep-alive")
	}

	if r.ID.IsNil() {
		t.Error("receipt needs a payment ID")
	}
	if r.Payer != "alice" || r.Recipient != "bob" {
		t.Errorf("receipt parties: got %s->%s", r.Payer, r.Recipient)
	}
	if !r.Amount.Equal(amount) {
		t.Errorf("receipt amount: got %v, want %v", r.Amount, amount)
	}
	if r.SettledAt.IsZero() {
		t.Error("receipt needs a settlement time")
	}
}

func TestSettleTransferFailure(t *testing.T) {
	boom := errors.New("no funds")
	tr := &recordingTransferer{err: boom}
	s := NewSettler(tr)

	r, err := s.Settle(context.Background(), "alice", "bob", types.New(100, "sub"))
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want transfer error unchanged", err)
	}
	if r != nil {
		t.Error("no receipt on a failed settlement")
	}
}

func TestMinimumBalancePassthrough(t *testing.T) {
	tr := &recordingTransferer{minimum: types.New(5, "sub")}
	s := NewSettler(tr)

	min, err := s.MinimumBalance(context.Background())
	if err != nil {
		t.Fatalf("MinimumBalance: %v", err)
	}
	if !min.Equal(types.New(5, "sub")) {
		t.Errorf("got %v, want 5 sub", min)
	}
}
