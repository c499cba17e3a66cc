package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/types"
)

type prefsMap map[space.ID]types.AccountID

func (m prefsMap) GetSpaceWallet(_ context.Context, id space.ID) (*types.AccountID, error) {
	if w, ok := m[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func TestRecipientPrecedence(t *testing.T) {
	spaces := space.NewStaticDirectory()
	spaces.Add(&space.Space{ID: 1, Owner: "owner"})

	tests := []struct {
		name       string
		plan       *plan.Plan
		prefs      prefsMap
		wantWho    types.AccountID
		wantSource Source
	}{
		{
			name:       "plan wallet wins",
			plan:       &plan.Plan{SpaceID: 1, Wallet: types.AccountRef("plan-wallet")},
			prefs:      prefsMap{1: "space-wallet"},
			wantWho:    "plan-wallet",
			wantSource: SourcePlanWallet,
		},
		{
			name:       "space wallet next",
			plan:       &plan.Plan{SpaceID: 1},
			prefs:      prefsMap{1: "space-wallet"},
			wantWho:    "space-wallet",
			wantSource: SourceSpaceWallet,
		},
		{
			name:       "owner last",
			plan:       &plan.Plan{SpaceID: 1},
			prefs:      prefsMap{},
			wantWho:    "owner",
			wantSource: SourceSpaceOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.prefs, spaces)

			res, err := r.Recipient(context.Background(), tt.plan)
			if err != nil {
				t.Fatalf("Recipient: %v", err)
			}
			if res.Recipient != tt.wantWho {
				t.Errorf("Recipient: got %s, want %s", res.Recipient, tt.wantWho)
			}
			if res.Source != tt.wantSource {
				t.Errorf("Source: got %s, want %s", res.Source, tt.wantSource)
			}
		})
	}
}

func TestRecipientNotFound(t *testing.T) {
	r := NewResolver(prefsMap{}, space.NewStaticDirectory())

	// Space 404 with no plan or space wallet means nobody can be paid.
	_, err := r.Recipient(context.Background(), &plan.Plan{SpaceID: 42})
	if !errors.Is(err, ErrRecipientNotFound) {
		t.Errorf("got %v, want ErrRecipientNotFound", err)
	}
}

func TestRecipientMissingSpaceStillUsesPlanWallet(t *testing.T) {
	r := NewResolver(prefsMap{}, space.NewStaticDirectory())

	// A plan-level wallet resolves without touching the directory.
	res, err := r.Recipient(context.Background(), &plan.Plan{
		SpaceID: 42,
		Wallet:  types.AccountRef("plan-wallet"),
	})
	if err != nil {
		t.Fatalf("Recipient: %v", err)
	}
	if res.Recipient != "plan-wallet" {
		t.Errorf("Recipient: got %s, want plan-wallet", res.Recipient)
	}
}
