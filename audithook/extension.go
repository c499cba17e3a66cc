// Package audithook bridges Patronage lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not import
// any particular audit system directly. Callers inject a RecorderFunc
// adapter that bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spacefold/patronage/hook"
	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/settlement"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
)

// Compile-time interface checks.
var (
	_ hook.Hook                  = (*Extension)(nil)
	_ hook.OnPlanCreated         = (*Extension)(nil)
	_ hook.OnPlanUpdated         = (*Extension)(nil)
	_ hook.OnSubscriptionCreated = (*Extension)(nil)
	_ hook.OnSubscriptionUpdated = (*Extension)(nil)
	_ hook.OnWalletChanged       = (*Extension)(nil)
	_ hook.OnPaymentSettled      = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so that the audithook package does not import
// a concrete audit system; callers inject the backend at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Patronage lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements hook.Hook.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Plan lifecycle hooks
// ──────────────────────────────────────────────────

// OnPlanCreated implements hook.OnPlanCreated.
func (e *Extension) OnPlanCreated(ctx context.Context, p *plan.Plan) error {
	return e.record(ctx, ActionPlanCreated, SeverityInfo, OutcomeSuccess,
		ResourcePlan, formatID(uint64(p.ID)), CategoryBilling,
		"space_id", uint64(p.SpaceID),
		"price", p.Price.String(),
		"period", p.Period.Key(),
		"created_by", p.Created.By.String(),
	)
}

// OnPlanUpdated implements hook.OnPlanUpdated.
func (e *Extension) OnPlanUpdated(ctx context.Context, oldPlan, newPlan *plan.Plan) error {
	return e.record(ctx, ActionPlanUpdated, SeverityInfo, OutcomeSuccess,
		ResourcePlan, formatID(uint64(newPlan.ID)), CategoryBilling,
		"old_wallet", walletString(oldPlan.Wallet),
		"new_wallet", walletString(newPlan.Wallet),
	)
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionCreated implements hook.OnSubscriptionCreated.
func (e *Extension) OnSubscriptionCreated(ctx context.Context, sub *subscription.Subscription) error {
	return e.record(ctx, ActionSubscriptionCreated, SeverityInfo, OutcomeSuccess,
		ResourceSubscription, formatID(uint64(sub.ID)), CategorySubscription,
		"plan_id", uint64(sub.PlanID),
		"patron", sub.Patron().String(),
	)
}

// OnSubscriptionUpdated implements hook.OnSubscriptionUpdated.
func (e *Extension) OnSubscriptionUpdated(ctx context.Context, oldSub, newSub *subscription.Subscription) error {
	return e.record(ctx, ActionSubscriptionUpdated, SeverityInfo, OutcomeSuccess,
		ResourceSubscription, formatID(uint64(newSub.ID)), CategorySubscription,
		"old_wallet", walletString(oldSub.Wallet),
		"new_wallet", walletString(newSub.Wallet),
	)
}

// ──────────────────────────────────────────────────
// Wallet preference hooks
// ──────────────────────────────────────────────────

// OnWalletChanged implements hook.OnWalletChanged.
func (e *Extension) OnWalletChanged(ctx context.Context, scope hook.WalletScope, owner types.AccountID, wallet *types.AccountID) error {
	return e.record(ctx, ActionWalletChanged, SeverityInfo, OutcomeSuccess,
		ResourceWallet, owner.String(), CategoryBilling,
		"scope", string(scope),
		"wallet", walletString(wallet),
	)
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentSettled implements hook.OnPaymentSettled.
func (e *Extension) OnPaymentSettled(ctx context.Context, r *settlement.Receipt) error {
	return e.record(ctx, ActionPaymentSettled, SeverityInfo, OutcomeSuccess,
		ResourcePayment, r.ID.String(), CategoryPayment,
		"subscription_id", uint64(r.SubscriptionID),
		"plan_id", uint64(r.PlanID),
		"payer", r.Payer.String(),
		"recipient", r.Recipient.String(),
		"amount", r.Amount.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func walletString(w *types.AccountID) string {
	if w == nil {
		return ""
	}
	return w.String()
}
