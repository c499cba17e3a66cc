package subscription

import (
	"context"

	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/types"
)

// Store is the subscription registry surface. The unified store.Store
// embeds it; a recurring-billing scheduler needs nothing beyond
// ListSubscriptionsByPeriod from this interface.
type Store interface {
	// CreateSubscription allocates the next subscription ID, stores the
	// subscription with that ID, and appends it to the patron, space,
	// and period indices.
	CreateSubscription(ctx context.Context, sub *Subscription) error

	// GetSubscription returns the subscription or the module's
	// not-found error.
	GetSubscription(ctx context.Context, subID ID) (*Subscription, error)

	// ListSubscriptionsByPatron returns the patron's subscriptions in
	// creation order.
	ListSubscriptionsByPatron(ctx context.Context, patron types.AccountID) ([]*Subscription, error)

	// ListSubscriptionsBySpace returns subscriptions to any of the
	// space's plans.
	ListSubscriptionsBySpace(ctx context.Context, spaceID space.ID) ([]*Subscription, error)

	// ListSubscriptionsByPeriod returns subscriptions grouped under a
	// period key (see plan.Period.Key).
	ListSubscriptionsByPeriod(ctx context.Context, periodKey string) ([]*Subscription, error)

	// UpdateSubscription replaces the stored subscription.
	UpdateSubscription(ctx context.Context, sub *Subscription) error

	// HasActiveSubscription reports whether the patron already holds an
	// active subscription to the plan.
	HasActiveSubscription(ctx context.Context, patron types.AccountID, planID plan.ID) (bool, error)
}
