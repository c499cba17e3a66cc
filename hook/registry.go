package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/settlement"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
)

// Registry manages registered hooks and dispatches events to them.
// Hook interfaces are cached at registration time so dispatch does not
// type-assert per event.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	onInit                []OnInit
	onShutdown            []OnShutdown
	onPlanCreated         []OnPlanCreated
	onPlanUpdated         []OnPlanUpdated
	onSubscriptionCreated []OnSubscriptionCreated
	onSubscriptionUpdated []OnSubscriptionUpdated
	onWalletChanged       []OnWalletChanged
	onPaymentSettled      []OnPaymentSettled
	onRecipientResolved   []OnRecipientResolved
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook to the registry and caches its interfaces.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}

	r.hooks = append(r.hooks, h)

	if v, ok := h.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := h.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := h.(OnPlanCreated); ok {
		r.onPlanCreated = append(r.onPlanCreated, v)
	}
	if v, ok := h.(OnPlanUpdated); ok {
		r.onPlanUpdated = append(r.onPlanUpdated, v)
	}
	if v, ok := h.(OnSubscriptionCreated); ok {
		r.onSubscriptionCreated = append(r.onSubscriptionCreated, v)
	}
	if v, ok := h.(OnSubscriptionUpdated); ok {
		r.onSubscriptionUpdated = append(r.onSubscriptionUpdated, v)
	}
	if v, ok := h.(OnWalletChanged); ok {
		r.onWalletChanged = append(r.onWalletChanged, v)
	}
	if v, ok := h.(OnPaymentSettled); ok {
		r.onPaymentSettled = append(r.onPaymentSettled, v)
	}
	if v, ok := h.(OnRecipientResolved); ok {
		r.onRecipientResolved = append(r.onRecipientResolved, v)
	}

	r.logger.Info("hook registered", "name", h.Name())

	return nil
}

// Get returns a hook by name, or nil.
func (r *Registry) Get(name string) Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hooks {
		if h.Name() == name {
			return h
		}
	}
	return nil
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// ──────────────────────────────────────────────────
// Event emission
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all hooks that implement it.
func (r *Registry) EmitInit(ctx context.Context, svc any) {
	r.mu.RLock()
	hooks := r.onInit
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnInit", func() error {
			return h.OnInit(ctx, svc)
		})
	}
}

// EmitShutdown calls OnShutdown for all hooks that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onShutdown
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnShutdown", func() error {
			return h.OnShutdown(ctx)
		})
	}
}

// EmitPlanCreated emits a plan created event.
func (r *Registry) EmitPlanCreated(ctx context.Context, p *plan.Plan) {
	r.mu.RLock()
	hooks := r.onPlanCreated
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnPlanCreated", func() error {
			return h.OnPlanCreated(ctx, p)
		})
	}
}

// EmitPlanUpdated emits a plan updated event.
func (r *Registry) EmitPlanUpdated(ctx context.Context, oldPlan, newPlan *plan.Plan) {
	r.mu.RLock()
	hooks := r.onPlanUpdated
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnPlanUpdated", func() error {
			return h.OnPlanUpdated(ctx, oldPlan, newPlan)
		})
	}
}

// EmitSubscriptionCreated emits a subscription created event.
func (r *Registry) EmitSubscriptionCreated(ctx context.Context, sub *subscription.Subscription) {
	r.mu.RLock()
	hooks := r.onSubscriptionCreated
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnSubscriptionCreated", func() error {
			return h.OnSubscriptionCreated(ctx, sub)
		})
	}
}

// EmitSubscriptionUpdated emits a subscription updated event.
func (r *Registry) EmitSubscriptionUpdated(ctx context.Context, oldSub, newSub *subscription.Subscription) {
	r.mu.RLock()
	hooks := r.onSubscriptionUpdated
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnSubscriptionUpdated", func() error {
			return h.OnSubscriptionUpdated(ctx, oldSub, newSub)
		})
	}
}

// EmitWalletChanged emits a wallet preference change event.
func (r *Registry) EmitWalletChanged(ctx context.Context, scope WalletScope, owner types.AccountID, w *types.AccountID) {
	r.mu.RLock()
	hooks := r.onWalletChanged
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnWalletChanged", func() error {
			return h.OnWalletChanged(ctx, scope, owner, w)
		})
	}
}

// EmitPaymentSettled emits a payment settled event.
func (r *Registry) EmitPaymentSettled(ctx context.Context, receipt *settlement.Receipt) {
	r.mu.RLock()
	hooks := r.onPaymentSettled
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnPaymentSettled", func() error {
			return h.OnPaymentSettled(ctx, receipt)
		})
	}
}

// EmitRecipientResolved emits a recipient resolution event.
func (r *Registry) EmitRecipientResolved(ctx context.Context, source string) {
	r.mu.RLock()
	hooks := r.onRecipientResolved
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnRecipientResolved", func() error {
			return h.OnRecipientResolved(ctx, source)
		})
	}
}

// call runs one hook with a timeout and logs failures. Hooks must never
// block or fail an operation.
func (r *Registry) call(ctx context.Context, hookName, event string, fn func() error) {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		err = fmt.Errorf("hook timeout: %s", hookName)
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		r.logger.Warn("hook failed",
			"hook", hookName,
			"event", event,
			"error", err,
		)
	}
}
