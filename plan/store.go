package plan

import (
	"context"

	"github.com/spacefold/patronage/space"
)

// Store is the plan registry surface. The unified store.Store embeds
// it; components that only touch plans can depend on this interface
// alone.
type Store interface {
	// CreatePlan allocates the next plan ID, stores the plan with that
	// ID, and appends it to the space index.
	CreatePlan(ctx context.Context, p *Plan) error

	// GetPlan returns the plan or the module's plan-not-found error.
	GetPlan(ctx context.Context, planID ID) (*Plan, error)

	// ListPlansBySpace returns the space's plans in creation order.
	ListPlansBySpace(ctx context.Context, spaceID space.ID) ([]*Plan, error)

	// UpdatePlan replaces the stored plan.
	UpdatePlan(ctx context.Context, p *Plan) error
}
