package patronage

import "github.com/spacefold/patronage/types"

// Re-export common types for convenience so users don't have to import
// the types package.

// Money is re-exported from the types package.
type Money = types.Money

// AccountID is re-exported from the types package.
type AccountID = types.AccountID

// Entity is re-exported from the types package.
type Entity = types.Entity

// Re-export constructors
var (
	NewMoney   = types.New
	ZeroMoney  = types.Zero
	NewEntity  = types.NewEntity
	AccountRef = types.AccountRef
)
