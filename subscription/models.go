// Package subscription models a patron's enrollment in a plan.
package subscription

import (
	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/types"
)

// ID identifies a subscription. IDs are allocated sequentially by the
// store, starting at 1, and are never reused.
type ID uint64

// Subscription is one patron's enrollment in one plan. The patron is
// the account recorded in the creation stamp.
type Subscription struct {
	types.Entity
	ID ID `json:"id"`
	// Wallet is a patron-supplied override recorded for future use.
	// The payment path currently always debits the patron directly.
	Wallet   *types.AccountID `json:"wallet,omitempty"`
	PlanID   plan.ID          `json:"plan_id"`
	IsActive bool             `json:"is_active"`
}

// Patron returns the subscribing account.
func (s *Subscription) Patron() types.AccountID { return s.Created.By }
