package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

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

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("patronage/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("patronage/postgres: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Plan registry ====================

func (s *Store) CreatePlan(ctx context.Context, p *plan.Plan) error {
	next, err := s.nextID(ctx, counterPlan)
	if err != nil {
		return err
	}
	p.ID = plan.ID(next)

	m := toPlanModel(p)
	if _, err := s.pg.NewInsert(m).Exec(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Store) GetPlan(ctx context.Context, planID plan.ID) (*plan.Plan, error) {
	m := new(planModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", uint64(planID)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patronage.ErrPlanNotFound
		}
		return nil, err
	}
	return fromPlanModel(m), nil
}

func (s *Store) ListPlansBySpace(ctx context.Context, spaceID space.ID) ([]*plan.Plan, error) {
	var models []planModel
	err := s.pg.NewSelect(&models).
		Where("space_id = $1", uint64(spaceID)).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*plan.Plan, len(models))
	for i := range models {
		result[i] = fromPlanModel(&models[i])
	}
	return result, nil
}

func (s *Store) UpdatePlan(ctx context.Context, p *plan.Plan) error {
	m := toPlanModel(p)
	res, err := s.pg.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return patronage.ErrPlanNotFound
	}
	return nil
}

// ==================== Subscription registry ====================

func (s *Store) CreateSubscription(ctx context.Context, sub *subscription.Subscription) error {
	// The space and period index columns are denormalized from the
	// plan row; the plan must exist.
	p, err := s.GetPlan(ctx, sub.PlanID)
	if err != nil {
		return err
	}

	next, err := s.nextID(ctx, counterSubscription)
	if err != nil {
		return err
	}
	sub.ID = subscription.ID(next)

	m := toSubscriptionModel(sub, p.SpaceID, p.Period.Key())
	if _, err := s.pg.NewInsert(m).Exec(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Store) GetSubscription(ctx context.Context, subID subscription.ID) (*subscription.Subscription, error) {
	m := new(subscriptionModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", uint64(subID)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patronage.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return fromSubscriptionModel(m), nil
}

func (s *Store) ListSubscriptionsByPatron(ctx context.Context, patron types.AccountID) ([]*subscription.Subscription, error) {
	return s.listSubscriptions(ctx, "created_by = $1", patron.String())
}

func (s *Store) ListSubscriptionsBySpace(ctx context.Context, spaceID space.ID) ([]*subscription.Subscription, error) {
	return s.listSubscriptions(ctx, "space_id = $1", uint64(spaceID))
}

func (s *Store) ListSubscriptionsByPeriod(ctx context.Context, periodKey string) ([]*subscription.Subscription, error) {
	return s.listSubscriptions(ctx, "period_key = $1", periodKey)
}

func (s *Store) listSubscriptions(ctx context.Context, where string, arg any) ([]*subscription.Subscription, error) {
	var models []subscriptionModel
	err := s.pg.NewSelect(&models).
		Where(where, arg).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*subscription.Subscription, len(models))
	for i := range models {
		result[i] = fromSubscriptionModel(&models[i])
	}
	return result, nil
}

func (s *Store) UpdateSubscription(ctx context.Context, sub *subscription.Subscription) error {
	// Index columns never change on update; refresh the mutable ones.
	res, err := s.pg.NewUpdate((*subscriptionModel)(nil)).
		Set("wallet = ?", accountRefToString(sub.Wallet)).
		Set("is_active = ?", sub.IsActive).
		Set("updated_by = ?", updatedBy(sub)).
		Set("updated_at = ?", updatedAt(sub)).
		Where("id = ?", uint64(sub.ID)).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return patronage.ErrSubscriptionNotFound
	}
	return nil
}

func (s *Store) HasActiveSubscription(ctx context.Context, patron types.AccountID, planID plan.ID) (bool, error) {
	m := new(subscriptionModel)
	err := s.pg.NewSelect(m).
		Where("created_by = $1", patron.String()).
		Where("plan_id = $2", uint64(planID)).
		Where("is_active = $3", true).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ==================== Wallet preferences ====================

func (s *Store) SetSpaceWallet(ctx context.Context, spaceID space.ID, wallet *types.AccountID) error {
	if wallet == nil {
		_, err := s.pg.NewDelete((*spaceWalletModel)(nil)).
			Where("space_id = $1", uint64(spaceID)).
			Exec(ctx)
		return err
	}

	res, err := s.pg.NewUpdate((*spaceWalletModel)(nil)).
		Set("wallet = ?", wallet.String()).
		Where("space_id = ?", uint64(spaceID)).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		m := &spaceWalletModel{SpaceID: uint64(spaceID), Wallet: wallet.String()}
		_, err = s.pg.NewInsert(m).Exec(ctx)
	}
	return err
}

func (s *Store) GetSpaceWallet(ctx context.Context, spaceID space.ID) (*types.AccountID, error) {
	m := new(spaceWalletModel)
	err := s.pg.NewSelect(m).
		Where("space_id = $1", uint64(spaceID)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil //nolint:nilnil // absence means "no override", not an error
		}
		return nil, err
	}
	w := types.AccountID(m.Wallet)
	return &w, nil
}

func (s *Store) SetPatronWallet(ctx context.Context, patron types.AccountID, wallet *types.AccountID) error {
	if wallet == nil {
		_, err := s.pg.NewDelete((*patronWalletModel)(nil)).
			Where("patron = $1", patron.String()).
			Exec(ctx)
		return err
	}

	res, err := s.pg.NewUpdate((*patronWalletModel)(nil)).
		Set("wallet = ?", wallet.String()).
		Where("patron = ?", patron.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		m := &patronWalletModel{Patron: patron.String(), Wallet: wallet.String()}
		_, err = s.pg.NewInsert(m).Exec(ctx)
	}
	return err
}

func (s *Store) GetPatronWallet(ctx context.Context, patron types.AccountID) (*types.AccountID, error) {
	m := new(patronWalletModel)
	err := s.pg.NewSelect(m).
		Where("patron = $1", patron.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil //nolint:nilnil // absence means "no override", not an error
		}
		return nil, err
	}
	w := types.AccountID(m.Wallet)
	return &w, nil
}

// ==================== Settlement receipts ====================

func (s *Store) CreatePayment(ctx context.Context, r *settlement.Receipt) error {
	m := toPaymentModel(r)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPayment(ctx context.Context, paymentID id.PaymentID) (*settlement.Receipt, error) {
	m := new(paymentModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", paymentID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, patronage.ErrNotFound
		}
		return nil, err
	}
	return fromPaymentModel(m)
}

func (s *Store) ListPaymentsBySubscription(ctx context.Context, subID subscription.ID) ([]*settlement.Receipt, error) {
	return s.listPayments(ctx, "subscription_id = $1", uint64(subID))
}

func (s *Store) ListPaymentsByPatron(ctx context.Context, patron types.AccountID) ([]*settlement.Receipt, error) {
	return s.listPayments(ctx, "payer = $1", patron.String())
}

func (s *Store) listPayments(ctx context.Context, where string, arg any) ([]*settlement.Receipt, error) {
	var models []paymentModel
	err := s.pg.NewSelect(&models).
		Where(where, arg).
		OrderExpr("settled_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*settlement.Receipt, len(models))
	for i := range models {
		r, err := fromPaymentModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Helpers ====================

// nextID reserves the next sequential ID for a counter using an
// optimistic compare-and-swap loop: counters only ever advance, so a
// lost race is retried against the fresh value.
func (s *Store) nextID(ctx context.Context, name string) (uint64, error) {
	for range 10 {
		m := new(counterModel)
		if err := s.pg.NewSelect(m).Where("name = $1", name).Scan(ctx); err != nil {
			return 0, fmt.Errorf("patronage/postgres: read %s counter: %w", name, err)
		}

		res, err := s.pg.NewUpdate((*counterModel)(nil)).
			Set("next = ?", m.Next+1).
			Where("name = ?", name).
			Where("next = ?", m.Next).
			Exec(ctx)
		if err != nil {
			return 0, err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if rows == 1 {
			return m.Next, nil
		}
	}
	return 0, fmt.Errorf("patronage/postgres: could not advance %s counter", name)
}

func updatedBy(sub *subscription.Subscription) *string {
	if sub.Updated == nil {
		return nil
	}
	by := sub.Updated.By.String()
	return &by
}

func updatedAt(sub *subscription.Subscription) any {
	if sub.Updated == nil {
		return nil
	}
	return sub.Updated.At
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
