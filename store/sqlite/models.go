package sqlite

import (
	"time"

	"github.com/xraph/grove"

	"github.com/spacefold/patronage/content"
	"github.com/spacefold/patronage/id"
	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/settlement"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
)

// ==================== Plan models ====================

type planModel struct {
	grove.BaseModel `grove:"table:patronage_plans"`

	ID            uint64     `grove:"id,pk"`
	SpaceID       uint64     `grove:"space_id"`
	Wallet        *string    `grove:"wallet"`
	PriceAmount   int64      `grove:"price_amount"`
	PriceCurrency string     `grove:"price_currency"`
	PeriodKind    string     `grove:"period_kind"`
	PeriodBlocks  uint64     `grove:"period_blocks"`
	PeriodKey     string     `grove:"period_key"`
	ContentKind   string     `grove:"content_kind"`
	ContentValue  string     `grove:"content_value"`
	IsActive      bool       `grove:"is_active"`
	CreatedBy     string     `grove:"created_by"`
	CreatedAt     time.Time  `grove:"created_at"`
	UpdatedBy     *string    `grove:"updated_by"`
	UpdatedAt     *time.Time `grove:"updated_at"`
}

func toPlanModel(p *plan.Plan) *planModel {
	m := &planModel{
		ID:            uint64(p.ID),
		SpaceID:       uint64(p.SpaceID),
		Wallet:        accountRefToString(p.Wallet),
		PriceAmount:   p.Price.Amount,
		PriceCurrency: p.Price.Currency,
		PeriodKind:    string(p.Period.Kind),
		PeriodBlocks:  p.Period.CustomBlocks,
		PeriodKey:     p.Period.Key(),
		ContentKind:   string(p.Content.Kind),
		ContentValue:  p.Content.Value,
		IsActive:      p.IsActive,
		CreatedBy:     p.Created.By.String(),
		CreatedAt:     p.Created.At,
	}
	if p.Updated != nil {
		by := p.Updated.By.String()
		at := p.Updated.At
		m.UpdatedBy = &by
		m.UpdatedAt = &at
	}
	return m
}

func fromPlanModel(m *planModel) *plan.Plan {
	return &plan.Plan{
		Entity:  entityFromColumns(m.CreatedBy, m.CreatedAt, m.UpdatedBy, m.UpdatedAt),
		ID:      plan.ID(m.ID),
		SpaceID: space.ID(m.SpaceID),
		Wallet:  stringToAccountRef(m.Wallet),
		Price:   types.New(m.PriceAmount, m.PriceCurrency),
		Period: plan.Period{
			Kind:         plan.PeriodKind(m.PeriodKind),
			CustomBlocks: m.PeriodBlocks,
		},
		Content: content.Content{
			Kind:  content.Kind(m.ContentKind),
			Value: m.ContentValue,
		},
		IsActive: m.IsActive,
	}
}

// ==================== Subscription models ====================

type subscriptionModel struct {
	grove.BaseModel `grove:"table:patronage_subscriptions"`

	ID     uint64  `grove:"id,pk"`
	Wallet *string `grove:"wallet"`
	PlanID uint64  `grove:"plan_id"`
	// SpaceID and PeriodKey are denormalized from the plan at creation
	// time so the space and period indices are single-table queries.
	SpaceID   uint64     `grove:"space_id"`
	PeriodKey string     `grove:"period_key"`
	IsActive  bool       `grove:"is_active"`
	CreatedBy string     `grove:"created_by"`
	CreatedAt time.Time  `grove:"created_at"`
	UpdatedBy *string    `grove:"updated_by"`
	UpdatedAt *time.Time `grove:"updated_at"`
}

func toSubscriptionModel(sub *subscription.Subscription, spaceID space.ID, periodKey string) *subscriptionModel {
	m := &subscriptionModel{
		ID:        uint64(sub.ID),
		Wallet:    accountRefToString(sub.Wallet),
		PlanID:    uint64(sub.PlanID),
		SpaceID:   uint64(spaceID),
		PeriodKey: periodKey,
		IsActive:  sub.IsActive,
		CreatedBy: sub.Created.By.String(),
		CreatedAt: sub.Created.At,
	}
	if sub.Updated != nil {
		by := sub.Updated.By.String()
		at := sub.Updated.At
		m.UpdatedBy = &by
		m.UpdatedAt = &at
	}
	return m
}

func fromSubscriptionModel(m *subscriptionModel) *subscription.Subscription {
	return &subscription.Subscription{
		Entity:   entityFromColumns(m.CreatedBy, m.CreatedAt, m.UpdatedBy, m.UpdatedAt),
		ID:       subscription.ID(m.ID),
		Wallet:   stringToAccountRef(m.Wallet),
		PlanID:   plan.ID(m.PlanID),
		IsActive: m.IsActive,
	}
}

// ==================== Wallet preference models ====================

type spaceWalletModel struct {
	grove.BaseModel `grove:"table:patronage_space_wallets"`

	SpaceID uint64 `grove:"space_id,pk"`
	Wallet  string `grove:"wallet"`
}

type patronWalletModel struct {
	grove.BaseModel `grove:"table:patronage_patron_wallets"`

	Patron string `grove:"patron,pk"`
	Wallet string `grove:"wallet"`
}

// ==================== Counter models ====================

type counterModel struct {
	grove.BaseModel `grove:"table:patronage_counters"`

	Name string `grove:"name,pk"`
	Next uint64 `grove:"next"`
}

const (
	counterPlan         = "plan"
	counterSubscription = "subscription"
)

// ==================== Payment models ====================

type paymentModel struct {
	grove.BaseModel `grove:"table:patronage_payments"`

	ID             string    `grove:"id,pk"`
	SubscriptionID uint64    `grove:"subscription_id"`
	PlanID         uint64    `grove:"plan_id"`
	Payer          string    `grove:"payer"`
	Recipient      string    `grove:"recipient"`
	Amount         int64     `grove:"amount"`
	Currency       string    `grove:"currency"`
	SettledAt      time.Time `grove:"settled_at"`
}

func toPaymentModel(r *settlement.Receipt) *paymentModel {
	return &paymentModel{
		ID:             r.ID.String(),
		SubscriptionID: uint64(r.SubscriptionID),
		PlanID:         uint64(r.PlanID),
		Payer:          r.Payer.String(),
		Recipient:      r.Recipient.String(),
		Amount:         r.Amount.Amount,
		Currency:       r.Amount.Currency,
		SettledAt:      r.SettledAt,
	}
}

func fromPaymentModel(m *paymentModel) (*settlement.Receipt, error) {
	paymentID, err := id.ParsePaymentID(m.ID)
	if err != nil {
		return nil, err
	}

	return &settlement.Receipt{
		ID:             paymentID,
		SubscriptionID: subscription.ID(m.SubscriptionID),
		PlanID:         plan.ID(m.PlanID),
		Payer:          types.AccountID(m.Payer),
		Recipient:      types.AccountID(m.Recipient),
		Amount:         types.New(m.Amount, m.Currency),
		SettledAt:      m.SettledAt,
	}, nil
}

// ==================== Helpers ====================

func accountRefToString(a *types.AccountID) *string {
	if a == nil {
		return nil
	}
	s := a.String()
	return &s
}

func stringToAccountRef(s *string) *types.AccountID {
	if s == nil {
		return nil
	}
	a := types.AccountID(*s)
	return &a
}

func entityFromColumns(createdBy string, createdAt time.Time, updatedBy *string, updatedAt *time.Time) types.Entity {
	e := types.Entity{
		Created: types.Stamp{By: types.AccountID(createdBy), At: createdAt},
	}
	if updatedBy != nil && updatedAt != nil {
		e.Updated = &types.Stamp{By: types.AccountID(*updatedBy), At: *updatedAt}
	}
	return e
}
