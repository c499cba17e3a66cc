// Package hook provides lifecycle hooks for Patronage. Hooks observe
// state changes (plan publication, enrollment, wallet changes, settled
// payments) without ever participating in control flow: emission is
// fire-and-forget and a failing hook is logged, not propagated.
package hook

import (
	"context"

	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/settlement"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
)

// Hook is the base interface that all hooks must implement.
type Hook interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the service starts. The service is passed as
// an opaque value to keep this package free of a root dependency.
type OnInit interface {
	Hook
	OnInit(ctx context.Context, svc any) error
}

// OnShutdown is called when the service is shutting down.
type OnShutdown interface {
	Hook
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Plan lifecycle hooks
// ──────────────────────────────────────────────────

// OnPlanCreated is called when a new plan is published.
type OnPlanCreated interface {
	Hook
	OnPlanCreated(ctx context.Context, p *plan.Plan) error
}

// OnPlanUpdated is called when a plan's wallet is changed.
type OnPlanUpdated interface {
	Hook
	OnPlanUpdated(ctx context.Context, oldPlan, newPlan *plan.Plan) error
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionCreated is called when a patron enrolls in a plan.
type OnSubscriptionCreated interface {
	Hook
	OnSubscriptionCreated(ctx context.Context, sub *subscription.Subscription) error
}

// OnSubscriptionUpdated is called when a subscription's wallet changes.
type OnSubscriptionUpdated interface {
	Hook
	OnSubscriptionUpdated(ctx context.Context, oldSub, newSub *subscription.Subscription) error
}

// ──────────────────────────────────────────────────
// Wallet preference hooks
// ──────────────────────────────────────────────────

// WalletScope names which preference map changed.
type WalletScope string

const (
	// WalletScopeSpace is the space→recipient-wallet preference.
	WalletScopeSpace WalletScope = "space"
	// WalletScopePatron is the patron→default-wallet preference.
	WalletScopePatron WalletScope = "patron"
)

// OnWalletChanged is called when a wallet preference is set or cleared.
// A nil wallet means the preference was cleared.
type OnWalletChanged interface {
	Hook
	OnWalletChanged(ctx context.Context, scope WalletScope, owner types.AccountID, wallet *types.AccountID) error
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentSettled is called after a payment settles and its
// subscription is committed.
type OnPaymentSettled interface {
	Hook
	OnPaymentSettled(ctx context.Context, r *settlement.Receipt) error
}

// OnRecipientResolved is called with the fallback-chain source that
// produced a payment recipient.
type OnRecipientResolved interface {
	Hook
	OnRecipientResolved(ctx context.Context, source string) error
}
