// Package observability provides a metrics extension for Patronage that
// records lifecycle event counts via an injected MetricFactory.
package observability

import (
	"context"

	"github.com/spacefold/patronage/hook"
	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/settlement"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ hook.Hook                  = (*MetricsExtension)(nil)
	_ hook.OnInit                = (*MetricsExtension)(nil)
	_ hook.OnPlanCreated         = (*MetricsExtension)(nil)
	_ hook.OnPlanUpdated         = (*MetricsExtension)(nil)
	_ hook.OnSubscriptionCreated = (*MetricsExtension)(nil)
	_ hook.OnSubscriptionUpdated = (*MetricsExtension)(nil)
	_ hook.OnWalletChanged       = (*MetricsExtension)(nil)
	_ hook.OnPaymentSettled      = (*MetricsExtension)(nil)
	_ hook.OnRecipientResolved   = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Patronage hook to automatically track settlement metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Plan metrics
	PlanCreated Counter
	PlanUpdated Counter
	PlanPrice   Histogram

	// Subscription metrics
	SubscriptionCreated Counter
	SubscriptionUpdated Counter

	// Wallet metrics
	SpaceWalletChanged  Counter
	PatronWalletChanged Counter

	// Settlement metrics
	PaymentSettled   Counter
	SettlementAmount Histogram

	// Recipient resolution metrics, one counter per fallback source
	ResolvedPlanWallet  Counter
	ResolvedSpaceWallet Counter
	ResolvedSpaceOwner  Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Plan metrics
		PlanCreated: factory.Counter("patronage.plan.created"),
		PlanUpdated: factory.Counter("patronage.plan.updated"),
		PlanPrice:   factory.Histogram("patronage.plan.price"),

		// Subscription metrics
		SubscriptionCreated: factory.Counter("patronage.subscription.created"),
		SubscriptionUpdated: factory.Counter("patronage.subscription.updated"),

		// Wallet metrics
		SpaceWalletChanged:  factory.Counter("patronage.wallet.space.changed"),
		PatronWalletChanged: factory.Counter("patronage.wallet.patron.changed"),

		// Settlement metrics
		PaymentSettled:   factory.Counter("patronage.payment.settled"),
		SettlementAmount: factory.Histogram("patronage.payment.amount"),

		// Recipient resolution metrics
		ResolvedPlanWallet:  factory.Counter("patronage.recipient.plan_wallet"),
		ResolvedSpaceWallet: factory.Counter("patronage.recipient.space_wallet"),
		ResolvedSpaceOwner:  factory.Counter("patronage.recipient.space_owner"),
	}
}

// Name implements hook.Hook.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements hook.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ any) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Plan lifecycle hooks
// ──────────────────────────────────────────────────

// OnPlanCreated implements hook.OnPlanCreated.
func (m *MetricsExtension) OnPlanCreated(_ context.Context, p *plan.Plan) error {
	m.PlanCreated.Inc()
	m.PlanPrice.Observe(float64(p.Price.Amount))
	return nil
}

// OnPlanUpdated implements hook.OnPlanUpdated.
func (m *MetricsExtension) OnPlanUpdated(_ context.Context, _, _ *plan.Plan) error {
	m.PlanUpdated.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionCreated implements hook.OnSubscriptionCreated.
func (m *MetricsExtension) OnSubscriptionCreated(_ context.Context, _ *subscription.Subscription) error {
	m.SubscriptionCreated.Inc()
	return nil
}

// OnSubscriptionUpdated implements hook.OnSubscriptionUpdated.
func (m *MetricsExtension) OnSubscriptionUpdated(_ context.Context, _, _ *subscription.Subscription) error {
	m.SubscriptionUpdated.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Wallet preference hooks
// ──────────────────────────────────────────────────

// OnWalletChanged implements hook.OnWalletChanged.
func (m *MetricsExtension) OnWalletChanged(_ context.Context, scope hook.WalletScope, _ types.AccountID, _ *types.AccountID) error {
	switch scope {
	case hook.WalletScopeSpace:
		m.SpaceWalletChanged.Inc()
	case hook.WalletScopePatron:
		m.PatronWalletChanged.Inc()
	}
	return nil
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentSettled implements hook.OnPaymentSettled.
func (m *MetricsExtension) OnPaymentSettled(_ context.Context, r *settlement.Receipt) error {
	m.PaymentSettled.Inc()
	m.SettlementAmount.Observe(float64(r.Amount.Amount))
	return nil
}

// OnRecipientResolved implements hook.OnRecipientResolved.
func (m *MetricsExtension) OnRecipientResolved(_ context.Context, source string) error {
	switch source {
	case "plan_wallet":
		m.ResolvedPlanWallet.Inc()
	case "space_wallet":
		m.ResolvedSpaceWallet.Inc()
	case "space_owner":
		m.ResolvedSpaceOwner.Inc()
	}
	return nil
}
