// Package wallet resolves the recipient of a subscription payment.
//
// Plan authors, space admins, and the platform's ownership record each
// may legitimately redirect funds, with increasing generality. The
// resolver evaluates that fallback chain in strict precedence order:
//
//  1. the plan's own wallet override
//  2. the space's recipient-wallet preference
//  3. the space's registered owner
//
// The first present value wins. Resolution never mutates state.
package wallet

import (
	"context"
	"errors"

	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/types"
)

// ErrRecipientNotFound is returned when the whole fallback chain is
// absent: no plan wallet, no space preference, no resolvable owner.
var ErrRecipientNotFound = errors.New("wallet: payment recipient not found")

// Source names the link of the fallback chain that produced a recipient.
type Source string

const (
	SourcePlanWallet  Source = "plan_wallet"
	SourceSpaceWallet Source = "space_wallet"
	SourceSpaceOwner  Source = "space_owner"
)

// Resolution is the outcome of a successful recipient lookup.
type Resolution struct {
	Recipient types.AccountID
	Source    Source
}

// PreferenceReader reads the space→recipient-wallet preference map.
// Absence is reported as (nil, nil).
type PreferenceReader interface {
	GetSpaceWallet(ctx context.Context, spaceID space.ID) (*types.AccountID, error)
}

// Resolver combines plan data, wallet preferences, and the space
// directory into a single recipient account.
type Resolver struct {
	prefs  PreferenceReader
	spaces space.Directory
}

// NewResolver creates a Resolver.
func NewResolver(prefs PreferenceReader, spaces space.Directory) *Resolver {
	return &Resolver{prefs: prefs, spaces: spaces}
}

// Recipient resolves where a payment for the given plan lands.
func (r *Resolver) Recipient(ctx context.Context, p *plan.Plan) (Resolution, error) {
	if p.Wallet != nil {
		return Resolution{Recipient: *p.Wallet, Source: SourcePlanWallet}, nil
	}

	pref, err := r.prefs.GetSpaceWallet(ctx, p.SpaceID)
	if err != nil {
		return Resolution{}, err
	}
	if pref != nil {
		return Resolution{Recipient: *pref, Source: SourceSpaceWallet}, nil
	}

	// A directory miss here means nobody can receive the payment, not
	// that the operation was malformed.
	sp, err := r.spaces.RequireSpace(ctx, p.SpaceID)
	if err != nil || sp.Owner.IsZero() {
		return Resolution{}, ErrRecipientNotFound
	}
	return Resolution{Recipient: sp.Owner, Source: SourceSpaceOwner}, nil
}
