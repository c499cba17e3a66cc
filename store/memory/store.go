// Package memory provides the in-memory reference store. It mirrors
// the original storage layout: entity maps keyed by ID, explicit
// append-only index slices, and sequential ID counters starting at 1.
package memory

import (
	"context"
	"sync"

	"github.com/spacefold/patronage"
	"github.com/spacefold/patronage/id"
	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/settlement"
	"github.com/spacefold/patronage/space"
	patronagestore "github.com/spacefold/patronage/store"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
)

// compile-time interface check
var _ patronagestore.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Plan registry
	nextPlanID     plan.ID
	plans          map[plan.ID]*plan.Plan
	planIDsBySpace map[space.ID][]plan.ID

	// Subscription registry
	nextSubscriptionID subscription.ID
	subscriptions      map[subscription.ID]*subscription.Subscription
	subIDsByPatron     map[types.AccountID][]subscription.ID
	subIDsBySpace      map[space.ID][]subscription.ID
	subIDsByPeriod     map[string][]subscription.ID

	// Wallet preferences
	spaceWallets  map[space.ID]types.AccountID
	patronWallets map[types.AccountID]types.AccountID

	// Settlement receipts, in settlement order
	payments     []*settlement.Receipt
	paymentsByID map[string]*settlement.Receipt

	closed bool
}

func New() *Store {
	return &Store{
		nextPlanID:         1,
		plans:              make(map[plan.ID]*plan.Plan),
		planIDsBySpace:     make(map[space.ID][]plan.ID),
		nextSubscriptionID: 1,
		subscriptions:      make(map[subscription.ID]*subscription.Subscription),
		subIDsByPatron:     make(map[types.AccountID][]subscription.ID),
		subIDsBySpace:      make(map[space.ID][]subscription.ID),
		subIDsByPeriod:     make(map[string][]subscription.ID),
		spaceWallets:       make(map[space.ID]types.AccountID),
		patronWallets:      make(map[types.AccountID]types.AccountID),
		paymentsByID:       make(map[string]*settlement.Receipt),
	}
}

// Plan registry implementation

func (s *Store) CreatePlan(_ context.Context, p *plan.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPlanID
	s.plans[p.ID] = p
	s.planIDsBySpace[p.SpaceID] = append(s.planIDsBySpace[p.SpaceID], p.ID)
	s.nextPlanID++

	return nil
}

func (s *Store) GetPlan(_ context.Context, planID plan.ID) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.plans[planID]; ok {
		return p, nil
	}
	return nil, patronage.ErrPlanNotFound
}

func (s *Store) ListPlansBySpace(_ context.Context, spaceID space.ID) ([]*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.planIDsBySpace[spaceID]
	result := make([]*plan.Plan, 0, len(ids))
	for _, pid := range ids {
		if p, ok := s.plans[pid]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Store) UpdatePlan(_ context.Context, p *plan.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID]; !exists {
		return patronage.ErrPlanNotFound
	}
	s.plans[p.ID] = p
	return nil
}

// Subscription registry implementation

func (s *Store) CreateSubscription(_ context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[sub.PlanID]
	if !ok {
		return patronage.ErrPlanNotFound
	}

	sub.ID = s.nextSubscriptionID
	patron := sub.Patron()

	s.subscriptions[sub.ID] = sub
	s.subIDsByPatron[patron] = append(s.subIDsByPatron[patron], sub.ID)
	s.subIDsBySpace[p.SpaceID] = append(s.subIDsBySpace[p.SpaceID], sub.ID)
	periodKey := p.Period.Key()
	s.subIDsByPeriod[periodKey] = append(s.subIDsByPeriod[periodKey], sub.ID)
	s.nextSubscriptionID++

	return nil
}

func (s *Store) GetSubscription(_ context.Context, subID subscription.ID) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sub, ok := s.subscriptions[subID]; ok {
		return sub, nil
	}
	return nil, patronage.ErrSubscriptionNotFound
}

func (s *Store) ListSubscriptionsByPatron(_ context.Context, patron types.AccountID) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.resolveSubs(s.subIDsByPatron[patron]), nil
}

func (s *Store) ListSubscriptionsBySpace(_ context.Context, spaceID space.ID) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.resolveSubs(s.subIDsBySpace[spaceID]), nil
}

func (s *Store) ListSubscriptionsByPeriod(_ context.Context, periodKey string) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.resolveSubs(s.subIDsByPeriod[periodKey]), nil
}

func (s *Store) UpdateSubscription(_ context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.ID]; !exists {
		return patronage.ErrSubscriptionNotFound
	}
	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *Store) HasActiveSubscription(_ context.Context, patron types.AccountID, planID plan.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sid := range s.subIDsByPatron[patron] {
		if sub, ok := s.subscriptions[sid]; ok {
			if sub.PlanID == planID && sub.IsActive {
				return true, nil
			}
		}
	}
	return false, nil
}

// resolveSubs maps index entries back to subscriptions. Callers hold
// the read lock.
func (s *Store) resolveSubs(ids []subscription.ID) []*subscription.Subscription {
	result := make([]*subscription.Subscription, 0, len(ids))
	for _, sid := range ids {
		if sub, ok := s.subscriptions[sid]; ok {
			result = append(result, sub)
		}
	}
	return result
}

// Wallet preference implementation

func (s *Store) SetSpaceWallet(_ context.Context, spaceID space.ID, wallet *types.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wallet == nil {
		delete(s.spaceWallets, spaceID)
		return nil
	}
	s.spaceWallets[spaceID] = *wallet
	return nil
}

func (s *Store) GetSpaceWallet(_ context.Context, spaceID space.ID) (*types.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if w, ok := s.spaceWallets[spaceID]; ok {
		return &w, nil
	}
	return nil, nil //nolint:nilnil // absence means "no override", not an error
}

func (s *Store) SetPatronWallet(_ context.Context, patron types.AccountID, wallet *types.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wallet == nil {
		delete(s.patronWallets, patron)
		return nil
	}
	s.patronWallets[patron] = *wallet
	return nil
}

func (s *Store) GetPatronWallet(_ context.Context, patron types.AccountID) (*types.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if w, ok := s.patronWallets[patron]; ok {
		return &w, nil
	}
	return nil, nil //nolint:nilnil // absence means "no override", not an error
}

// Settlement receipt implementation

func (s *Store) CreatePayment(_ context.Context, r *settlement.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.paymentsByID[r.ID.String()]; exists {
		return patronage.ErrAlreadyExists
	}
	s.payments = append(s.payments, r)
	s.paymentsByID[r.ID.String()] = r
	return nil
}

func (s *Store) GetPayment(_ context.Context, paymentID id.PaymentID) (*settlement.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.paymentsByID[paymentID.String()]; ok {
		return r, nil
	}
	return nil, patronage.ErrNotFound
}

func (s *Store) ListPaymentsBySubscription(_ context.Context, subID subscription.ID) ([]*settlement.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*settlement.Receipt, 0)
	for _, r := range s.payments {
		if r.SubscriptionID == subID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *Store) ListPaymentsByPatron(_ context.Context, patron types.AccountID) ([]*settlement.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*settlement.Receipt, 0)
	for _, r := range s.payments {
		if r.Payer == patron {
			result = append(result, r)
		}
	}
	return result, nil
}

// Store management

func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return patronage.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
