// Package settlement moves money. It invokes the external currency
// transfer primitive with keep-alive semantics and produces a Receipt
// for every successful transfer. Any failure is surfaced unchanged to
// the caller; the caller commits registry state only after settlement
// succeeds.
package settlement

import (
	"context"
	"time"

	"github.com/spacefold/patronage/currency"
	"github.com/spacefold/patronage/id"
	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
)

// Receipt records one settled payment. Receipts are additive
// bookkeeping; the authoritative balance movement is the currency
// ledger's.
type Receipt struct {
	ID             id.PaymentID    `json:"id"`
	SubscriptionID subscription.ID `json:"subscription_id"`
	PlanID         plan.ID         `json:"plan_id"`
	Payer          types.AccountID `json:"payer"`
	Recipient      types.AccountID `json:"recipient"`
	Amount         types.Money     `json:"amount"`
	SettledAt      time.Time       `json:"settled_at"`
}

// Store is the receipt registry surface.
type Store interface {
	CreatePayment(ctx context.Context, r *Receipt) error
	GetPayment(ctx context.Context, paymentID id.PaymentID) (*Receipt, error)
	ListPaymentsBySubscription(ctx context.Context, subID subscription.ID) ([]*Receipt, error)
	ListPaymentsByPatron(ctx context.Context, patron types.AccountID) ([]*Receipt, error)
}

// Settler executes payments through the external transfer primitive.
type Settler struct {
	transferer currency.Transferer
}

// NewSettler creates a Settler over the given transfer primitive.
func NewSettler(t currency.Transferer) *Settler {
	return &Settler{transferer: t}
}

// MinimumBalance returns the currency's existential deposit.
func (s *Settler) MinimumBalance(ctx context.Context) (types.Money, error) {
	return s.transferer.MinimumBalance(ctx)
}

// Settle transfers amount from payer to recipient with keep-alive
// semantics: the payer account must retain at least the existential
// deposit. On success it returns a Receipt stamped with a fresh payment
// ID; plan and subscription references are filled in by the caller once
// the subscription is committed.
func (s *Settler) Settle(ctx context.Context, payer, recipient types.AccountID, amount types.Money) (*Receipt, error) {
	if err := s.transferer.Transfer(ctx, payer, recipient, amount, true); err != nil {
		return nil, err
	}

	return &Receipt{
		ID:        id.NewPaymentID(),
		Payer:     payer,
		Recipient: recipient,
		Amount:    amount,
		SettledAt: time.Now().UTC(),
	}, nil
}
