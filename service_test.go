package patronage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spacefold/patronage"
	"github.com/spacefold/patronage/content"
	currencymem "github.com/spacefold/patronage/currency/memory"
	"github.com/spacefold/patronage/identity"
	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/store/memory"
	"github.com/spacefold/patronage/types"
)

const existentialDeposit = 10

type fixture struct {
	svc    *patronage.Service
	ledger *currencymem.Ledger
	spaces *space.StaticDirectory
	store  *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := memory.New()
	spaces := space.NewStaticDirectory()
	ledger := currencymem.New(types.New(existentialDeposit, "sub"))

	return &fixture{
		svc:    patronage.New(st, spaces, ledger),
		ledger: ledger,
		spaces: spaces,
		store:  st,
	}
}

func as(who types.AccountID) context.Context {
	return identity.WithCaller(context.Background(), who)
}

func sub(amount int64) types.Money { return types.New(amount, "sub") }

// planInput is a valid CreatePlanInput for the given space.
func planInput(spaceID space.ID) patronage.CreatePlanInput {
	return patronage.CreatePlanInput{
		SpaceID: spaceID,
		Price:   sub(100),
		Period:  plan.Daily,
		Content: content.None(),
	}
}

// ──────────────────────────────────────────────────
// Plan management
// ──────────────────────────────────────────────────

func TestCreatePlan(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	if p.ID != 1 {
		t.Errorf("first plan ID: got %d, want 1", p.ID)
	}
	if !p.IsActive {
		t.Error("new plan should be active")
	}
	if p.Created.By != "owner" {
		t.Errorf("Created.By: got %s, want owner", p.Created.By)
	}

	second, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second plan ID: got %d, want 2", second.ID)
	}
}

func TestCreatePlanRejections(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})

	belowED := planInput(1)
	belowED.Price = sub(existentialDeposit - 1)

	zeroPrice := planInput(1)
	zeroPrice.Price = sub(0)

	badContent := planInput(1)
	badContent.Content = content.IPFS("not-a-cid")

	badPeriod := planInput(1)
	badPeriod.Period = plan.Period{Kind: "hourly"}

	tests := []struct {
		name    string
		ctx     context.Context
		in      patronage.CreatePlanInput
		wantErr error
	}{
		{"unauthenticated", context.Background(), planInput(1), patronage.ErrUnauthenticated},
		{"price below existential deposit", as("owner"), belowED, patronage.ErrPriceBelowExistentialDeposit},
		{"zero price", as("owner"), zeroPrice, patronage.ErrPriceBelowExistentialDeposit},
		{"invalid content", as("owner"), badContent, patronage.ErrInvalidContent},
		{"missing space", as("owner"), planInput(9), patronage.ErrSpaceNotFound},
		{"not the owner", as("mallory"), planInput(1), patronage.ErrNotSpaceOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.CreatePlan(tt.ctx, tt.in); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Failed attempts must not consume plan IDs.
	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("plan ID after rejected attempts: got %d, want 1", p.ID)
	}

	var vErr patronage.ValidationError
	if _, err := f.svc.CreatePlan(as("owner"), badPeriod); !errors.As(err, &vErr) {
		t.Errorf("bad period: got %v, want ValidationError", err)
	}

	// A price denominated in a foreign currency must be rejected up
	// front, never compared against the existential deposit.
	foreignPrice := planInput(1)
	foreignPrice.Price = types.New(100, "dot")
	if _, err := f.svc.CreatePlan(as("owner"), foreignPrice); !errors.As(err, &vErr) {
		t.Errorf("foreign-currency price: got %v, want ValidationError", err)
	} else if vErr.Field != "price" {
		t.Errorf("foreign-currency price: got field %q, want field \"price\"", vErr.Field)
	}
}

func TestUpdatePlan(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}

	// Non-owner may not manage the space's plans.
	if _, err := f.svc.UpdatePlan(as("mallory"), p.ID, types.AccountRef("loot")); !errors.Is(err, patronage.ErrNoPermissionToUpdatePlan) {
		t.Errorf("got %v, want ErrNoPermissionToUpdatePlan", err)
	}

	// Equal wallet is a no-op and must be reported as such.
	if _, err := f.svc.UpdatePlan(as("owner"), p.ID, nil); !errors.Is(err, patronage.ErrNothingToUpdate) {
		t.Errorf("got %v, want ErrNothingToUpdate", err)
	}

	updated, err := f.svc.UpdatePlan(as("owner"), p.ID, types.AccountRef("treasury"))
	if err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if updated.Wallet == nil || *updated.Wallet != "treasury" {
		t.Errorf("wallet: got %v, want treasury", updated.Wallet)
	}
	if !updated.IsUpdated() {
		t.Error("update must stamp the entity")
	}

	// Setting the same wallet again is again a no-op.
	if _, err := f.svc.UpdatePlan(as("owner"), p.ID, types.AccountRef("treasury")); !errors.Is(err, patronage.ErrNothingToUpdate) {
		t.Errorf("got %v, want ErrNothingToUpdate", err)
	}

	if _, err := f.svc.UpdatePlan(as("owner"), 99, nil); !errors.Is(err, patronage.ErrPlanNotFound) {
		t.Errorf("got %v, want ErrPlanNotFound", err)
	}
}

func TestDeletePlanNotSupported(t *testing.T) {
	f := newFixture(t)

	if err := f.svc.DeletePlan(as("owner"), 1); !errors.Is(err, patronage.ErrNotSupported) {
		t.Errorf("got %v, want ErrNotSupported", err)
	}
	if err := f.svc.DeletePlan(context.Background(), 1); !errors.Is(err, patronage.ErrUnauthenticated) {
		t.Errorf("unauthenticated: got %v, want ErrUnauthenticated", err)
	}
}

// ──────────────────────────────────────────────────
// Subscriptions and settlement
// ──────────────────────────────────────────────────

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})
	f.ledger.Deposit("alice", sub(500))

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}

	s, err := f.svc.Subscribe(as("alice"), p.ID, nil)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if s.ID != 1 {
		t.Errorf("first subscription ID: got %d, want 1", s.ID)
	}
	if s.Patron() != "alice" {
		t.Errorf("patron: got %s, want alice", s.Patron())
	}

	// Exactly the plan price moved, payer to space owner.
	if got := f.ledger.Balance("alice"); !got.Equal(sub(400)) {
		t.Errorf("alice balance: got %v, want 400 sub", got)
	}
	if got := f.ledger.Balance("owner"); !got.Equal(sub(100)) {
		t.Errorf("owner balance: got %v, want 100 sub", got)
	}

	// The receipt was recorded against the new subscription.
	receipts, err := f.svc.PaymentsBySubscription(as("alice"), s.ID)
	if err != nil {
		t.Fatalf("PaymentsBySubscription: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("receipts: got %d, want 1", len(receipts))
	}
	r := receipts[0]
	if r.Payer != "alice" || r.Recipient != "owner" || !r.Amount.Equal(sub(100)) {
		t.Errorf("receipt: %s->%s %v", r.Payer, r.Recipient, r.Amount)
	}
	if r.PlanID != p.ID || r.SubscriptionID != s.ID {
		t.Errorf("receipt references: plan %d sub %d", r.PlanID, r.SubscriptionID)
	}

	// Index surfaces see the enrollment.
	bySpace, _ := f.svc.SubscriptionsBySpace(as("alice"), 1)
	if len(bySpace) != 1 {
		t.Errorf("by space: got %d, want 1", len(bySpace))
	}
	byPeriod, _ := f.svc.SubscriptionsByPeriod(as("alice"), plan.Daily)
	if len(byPeriod) != 1 {
		t.Errorf("by period: got %d, want 1", len(byPeriod))
	}
}

func TestSubscribeTwiceRejected(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})
	f.ledger.Deposit("alice", sub(500))

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Subscribe(as("alice"), p.ID, nil); err != nil {
		t.Fatalf("first Subscribe: %v", err)
	}

	_, err = f.svc.Subscribe(as("alice"), p.ID, nil)
	if !errors.Is(err, patronage.ErrAlreadySubscribed) {
		t.Errorf("got %v, want ErrAlreadySubscribed", err)
	}

	// The rejected attempt must not settle.
	if got := f.ledger.Balance("alice"); !got.Equal(sub(400)) {
		t.Errorf("alice balance: got %v, want 400 sub", got)
	}

	// A different patron is unaffected.
	f.ledger.Deposit("bob", sub(200))
	if _, err := f.svc.Subscribe(as("bob"), p.ID, nil); err != nil {
		t.Errorf("bob Subscribe: %v", err)
	}
}

func TestSubscribeInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})
	f.ledger.Deposit("alice", sub(50))

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.Subscribe(as("alice"), p.ID, nil)
	if !errors.Is(err, patronage.ErrInsufficientFunds) {
		t.Errorf("got %v, want ErrInsufficientFunds", err)
	}

	// No partial state: no subscription, no receipt, no movement.
	subs, _ := f.svc.SubscriptionsByPatron(as("alice"), "alice")
	if len(subs) != 0 {
		t.Errorf("subscriptions after failed settle: got %d, want 0", len(subs))
	}
	if got := f.ledger.Balance("alice"); !got.Equal(sub(50)) {
		t.Errorf("alice balance: got %v, want 50 sub", got)
	}
}

func TestSubscribeKeepsPayerAlive(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}

	// Paying would leave alice below the existential deposit.
	f.ledger.Deposit("alice", sub(100+existentialDeposit-1))
	if _, err := f.svc.Subscribe(as("alice"), p.ID, nil); !errors.Is(err, patronage.ErrWouldReapAccount) {
		t.Errorf("got %v, want ErrWouldReapAccount", err)
	}

	// Exactly price plus deposit is enough.
	f.ledger.Deposit("alice", sub(1))
	if _, err := f.svc.Subscribe(as("alice"), p.ID, nil); err != nil {
		t.Errorf("Subscribe at the boundary: %v", err)
	}
	if got := f.ledger.Balance("alice"); !got.Equal(sub(existentialDeposit)) {
		t.Errorf("alice balance: got %v, want the existential deposit", got)
	}
}

func TestSubscribeRecipientPrecedence(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})
	f.ledger.Deposit("alice", sub(1000))

	// Plan wallet beats everything.
	planWallet := planInput(1)
	planWallet.Wallet = types.AccountRef("plan-wallet")
	p1, err := f.svc.CreatePlan(as("owner"), planWallet)
	if err != nil {
		t.Fatal(err)
	}

	// Space wallet beats the owner.
	p2, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.UpdateSpaceDefaultWallet(as("owner"), 1, types.AccountRef("space-wallet")); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Subscribe(as("alice"), p1.ID, nil); err != nil {
		t.Fatal(err)
	}
	if got := f.ledger.Balance("plan-wallet"); !got.Equal(sub(100)) {
		t.Errorf("plan wallet: got %v, want 100 sub", got)
	}

	if _, err := f.svc.Subscribe(as("alice"), p2.ID, nil); err != nil {
		t.Fatal(err)
	}
	if got := f.ledger.Balance("space-wallet"); !got.Equal(sub(100)) {
		t.Errorf("space wallet: got %v, want 100 sub", got)
	}

	// Clearing the space wallet falls back to the owner.
	if err := f.svc.UpdateSpaceDefaultWallet(as("owner"), 1, nil); err != nil {
		t.Fatal(err)
	}
	p3, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Subscribe(as("alice"), p3.ID, nil); err != nil {
		t.Fatal(err)
	}
	if got := f.ledger.Balance("owner"); !got.Equal(sub(100)) {
		t.Errorf("owner: got %v, want 100 sub", got)
	}
}

func TestSubscribeNoRecipient(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})
	f.ledger.Deposit("alice", sub(500))

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}

	// The space vanishes from the directory between plan creation and
	// enrollment; with no plan or space wallet there is nobody to pay.
	f.spaces.Add(&space.Space{ID: 1, Owner: ""})

	if _, err := f.svc.Subscribe(as("alice"), p.ID, nil); !errors.Is(err, patronage.ErrRecipientNotFound) {
		t.Errorf("got %v, want ErrRecipientNotFound", err)
	}
	if got := f.ledger.Balance("alice"); !got.Equal(sub(500)) {
		t.Errorf("alice balance: got %v, want 500 sub", got)
	}
}

func TestUpdateSubscription(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})
	f.ledger.Deposit("alice", sub(500))

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}
	s, err := f.svc.Subscribe(as("alice"), p.ID, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Only the patron may update.
	if _, err := f.svc.UpdateSubscription(as("owner"), s.ID, types.AccountRef("w")); !errors.Is(err, patronage.ErrNotSubscriber) {
		t.Errorf("got %v, want ErrNotSubscriber", err)
	}

	if _, err := f.svc.UpdateSubscription(as("alice"), s.ID, nil); !errors.Is(err, patronage.ErrNothingToUpdate) {
		t.Errorf("got %v, want ErrNothingToUpdate", err)
	}

	updated, err := f.svc.UpdateSubscription(as("alice"), s.ID, types.AccountRef("cold"))
	if err != nil {
		t.Fatalf("UpdateSubscription: %v", err)
	}
	if updated.Wallet == nil || *updated.Wallet != "cold" {
		t.Errorf("wallet: got %v, want cold", updated.Wallet)
	}

	if _, err := f.svc.UpdateSubscription(as("alice"), 99, nil); !errors.Is(err, patronage.ErrSubscriptionNotFound) {
		t.Errorf("got %v, want ErrSubscriptionNotFound", err)
	}
}

func TestUnsubscribeNotSupported(t *testing.T) {
	f := newFixture(t)

	if err := f.svc.Unsubscribe(as("alice"), 1); !errors.Is(err, patronage.ErrNotSupported) {
		t.Errorf("got %v, want ErrNotSupported", err)
	}
}

func TestDefaultWalletRecordedButNotDebited(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})
	f.ledger.Deposit("alice", sub(500))
	f.ledger.Deposit("alice-cold", sub(500))

	if err := f.svc.UpdateDefaultWallet(as("alice"), types.AccountRef("alice-cold")); err != nil {
		t.Fatalf("UpdateDefaultWallet: %v", err)
	}

	p, err := f.svc.CreatePlan(as("owner"), planInput(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Subscribe(as("alice"), p.ID, nil); err != nil {
		t.Fatal(err)
	}

	// The preference is bookkeeping only: the caller paid, not the
	// designated wallet.
	if got := f.ledger.Balance("alice"); !got.Equal(sub(400)) {
		t.Errorf("alice balance: got %v, want 400 sub", got)
	}
	if got := f.ledger.Balance("alice-cold"); !got.Equal(sub(500)) {
		t.Errorf("alice-cold balance: got %v, want 500 sub", got)
	}
}

func TestUpdateSpaceDefaultWalletOwnerOnly(t *testing.T) {
	f := newFixture(t)
	f.spaces.Add(&space.Space{ID: 1, Owner: "owner"})

	if err := f.svc.UpdateSpaceDefaultWallet(as("mallory"), 1, types.AccountRef("loot")); !errors.Is(err, patronage.ErrNotSpaceOwner) {
		t.Errorf("got %v, want ErrNotSpaceOwner", err)
	}
}
