// Package store declares the unified persistence interface for
// Patronage. Backends (memory, sqlite, postgres) implement it; the
// service mutates registries exclusively through it.
package store

import (
	"context"

	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/settlement"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
)

// Store is the unified storage interface: the plan and subscription
// registries, their derived indices, the wallet preference maps, and
// the settlement receipt log.
//
// Every method is atomic: it either fully applies or leaves no
// observable change. Creation methods assign sequential entity IDs
// (starting at 1, never reused) and maintain the derived indices in
// the same step, so no caller can observe an indexed ID that does not
// resolve.
type Store interface {
	plan.Store
	subscription.Store
	settlement.Store

	// Wallet preference maps. A nil wallet clears the preference;
	// reads report absence as (nil, nil).

	SetSpaceWallet(ctx context.Context, spaceID space.ID, wallet *types.AccountID) error
	GetSpaceWallet(ctx context.Context, spaceID space.ID) (*types.AccountID, error)
	SetPatronWallet(ctx context.Context, patron types.AccountID, wallet *types.AccountID) error
	GetPatronWallet(ctx context.Context, patron types.AccountID) (*types.AccountID, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
