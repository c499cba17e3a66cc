// Package plan models paid subscription plans published by space owners.
package plan

import (
	"fmt"

	"github.com/spacefold/patronage/content"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/types"
)

// ID identifies a plan. IDs are allocated sequentially by the store,
// starting at 1, and are never reused.
type ID uint64

// PeriodKind enumerates the supported billing cadences.
type PeriodKind string

const (
	PeriodDaily     PeriodKind = "daily"
	PeriodWeekly    PeriodKind = "weekly"
	PeriodQuarterly PeriodKind = "quarterly"
	PeriodYearly    PeriodKind = "yearly"
	// PeriodCustom is a block-count cadence. Accepted structurally but
	// not yet actionable by any scheduler.
	PeriodCustom PeriodKind = "custom"
)

// Period is the billing cadence attached to a plan. Recurring charging
// itself is out of scope here; the period only determines which
// scheduler index a subscription lands in.
type Period struct {
	Kind PeriodKind `json:"kind"`
	// CustomBlocks is the cadence in blocks, set only for PeriodCustom.
	CustomBlocks uint64 `json:"custom_blocks,omitempty"`
}

// Convenience period values.
var (
	Daily     = Period{Kind: PeriodDaily}
	Weekly    = Period{Kind: PeriodWeekly}
	Quarterly = Period{Kind: PeriodQuarterly}
	Yearly    = Period{Kind: PeriodYearly}
)

// Custom returns a block-count period.
func Custom(blocks uint64) Period {
	return Period{Kind: PeriodCustom, CustomBlocks: blocks}
}

// Valid reports whether the period is structurally sound.
func (p Period) Valid() bool {
	switch p.Kind {
	case PeriodDaily, PeriodWeekly, PeriodQuarterly, PeriodYearly:
		return p.CustomBlocks == 0
	case PeriodCustom:
		return p.CustomBlocks > 0
	default:
		return false
	}
}

// Key returns the canonical index key for the period, e.g. "daily" or
// "custom:7200". Subscriptions are grouped under this key for the
// recurring-billing scheduler.
func (p Period) Key() string {
	if p.Kind == PeriodCustom {
		return fmt.Sprintf("custom:%d", p.CustomBlocks)
	}
	return string(p.Kind)
}

// String returns the canonical key.
func (p Period) String() string { return p.Key() }

// Plan is a priced, periodic subscription offer tied to one space.
type Plan struct {
	types.Entity
	ID      ID       `json:"id"`
	SpaceID space.ID `json:"space_id"`
	// Wallet optionally overrides where payments for this plan land.
	// Nil means "inherit further down the fallback chain".
	Wallet   *types.AccountID `json:"wallet,omitempty"`
	Price    types.Money      `json:"price"`
	Period   Period           `json:"period"`
	Content  content.Content  `json:"content"`
	IsActive bool             `json:"is_active"`
}
