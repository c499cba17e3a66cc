package patronage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacefold/patronage/content"
	"github.com/spacefold/patronage/currency"
	"github.com/spacefold/patronage/hook"
	"github.com/spacefold/patronage/id"
	"github.com/spacefold/patronage/identity"
	"github.com/spacefold/patronage/plan"
	"github.com/spacefold/patronage/settlement"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/store"
	"github.com/spacefold/patronage/subscription"
	"github.com/spacefold/patronage/types"
	"github.com/spacefold/patronage/wallet"
)

// Service is the subscription and payment-settlement engine.
//
// Every operation runs validate → compute → settle → commit: all
// precondition checks execute before any mutation, settlement is
// sequenced strictly before registry commit, and the first failing
// check aborts with zero observable state change.
type Service struct {
	store     store.Store
	spaces    space.Directory
	settler   *settlement.Settler
	resolver  *wallet.Resolver
	validator content.Validator
	guard     identity.Guard
	hooks     *hook.Registry
	logger    *slog.Logger
}

// New creates a Service over the given store, space directory, and
// currency-transfer primitive.
func New(s store.Store, spaces space.Directory, transferer currency.Transferer, opts ...Option) *Service {
	svc := &Service{
		store:     s,
		spaces:    spaces,
		settler:   settlement.NewSettler(transferer),
		resolver:  wallet.NewResolver(s, spaces),
		validator: content.StandardValidator{},
		guard:     identity.ContextGuard{},
		hooks:     hook.NewRegistry(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Option configures a Service instance.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
		s.hooks.WithLogger(logger)
	}
}

// WithHook registers a lifecycle hook.
func WithHook(h hook.Hook) Option {
	return func(s *Service) {
		_ = s.hooks.Register(h) //nolint:errcheck // best-effort hook registration during init
	}
}

// WithValidator replaces the structural content validator.
func WithValidator(v content.Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// WithGuard replaces the caller-identity guard.
func WithGuard(g identity.Guard) Option {
	return func(s *Service) {
		s.guard = g
	}
}

// Start migrates the store and announces the service to hooks.
func (s *Service) Start(ctx context.Context) error {
	if err := s.store.Migrate(ctx); err != nil {
		return err
	}

	s.hooks.EmitInit(ctx, s)

	s.logger.Info("patronage started", "hooks", s.hooks.Count())

	return nil
}

// Stop shuts down the Service.
func (s *Service) Stop() error {
	s.hooks.EmitShutdown(context.Background())
	return s.store.Close()
}

// ──────────────────────────────────────────────────
// Plan Management
// ──────────────────────────────────────────────────

// CreatePlanInput carries the parameters of CreatePlan.
type CreatePlanInput struct {
	SpaceID space.ID
	// Wallet optionally overrides where payments for this plan land.
	Wallet  *types.AccountID
	Price   types.Money
	Period  plan.Period
	Content content.Content
}

// CreatePlan publishes a subscription plan for a space. Only the space
// owner may; the price must be at least the currency's existential
// deposit so that any recipient account can retain it.
func (s *Service) CreatePlan(ctx context.Context, in CreatePlanInput) (*plan.Plan, error) {
	caller, err := s.guard.Caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in.Content); err != nil {
		return nil, err
	}

	if !in.Period.Valid() {
		return nil, ValidationError{Field: "period", Message: "unknown kind or bad custom block count"}
	}

	minimum, err := s.settler.MinimumBalance(ctx)
	if err != nil {
		return nil, err
	}
	if !in.Price.SameCurrency(minimum) {
		return nil, ValidationError{
			Field:   "price",
			Message: fmt.Sprintf("currency %q does not match the settlement currency %q", in.Price.Currency, minimum.Currency),
		}
	}
	if !in.Price.IsPositive() || !in.Price.AtLeast(minimum) {
		return nil, ErrPriceBelowExistentialDeposit
	}

	sp, err := s.spaces.RequireSpace(ctx, in.SpaceID)
	if err != nil {
		return nil, err
	}
	if err := sp.EnsureOwner(caller); err != nil {
		return nil, err
	}

	p := &plan.Plan{
		Entity:   types.NewEntity(caller),
		SpaceID:  in.SpaceID,
		Wallet:   in.Wallet,
		Price:    in.Price,
		Period:   in.Period,
		Content:  in.Content,
		IsActive: true,
	}

	if err := s.store.CreatePlan(ctx, p); err != nil {
		return nil, err
	}

	s.hooks.EmitPlanCreated(ctx, p)
	s.logger.Info("plan created",
		"plan_id", uint64(p.ID),
		"space_id", uint64(p.SpaceID),
		"price", p.Price.String(),
		"period", p.Period.Key(),
	)

	return p, nil
}

// UpdatePlan replaces a plan's wallet override. The caller must be
// authorized to manage the plan's subscriptions, currently the space
// owner.
func (s *Service) UpdatePlan(ctx context.Context, planID plan.ID, newWallet *types.AccountID) (*plan.Plan, error) {
	caller, err := s.guard.Caller(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	sp, err := s.spaces.RequireSpace(ctx, p.SpaceID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSubscriptionsManager(caller, sp); err != nil {
		return nil, err
	}

	if types.EqualAccountRefs(newWallet, p.Wallet) {
		return nil, ErrNothingToUpdate
	}

	old := *p
	p.Wallet = newWallet
	p.Touch(caller)

	if err := s.store.UpdatePlan(ctx, p); err != nil {
		return nil, err
	}

	s.hooks.EmitPlanUpdated(ctx, &old, p)

	return p, nil
}

// UpdateSpaceDefaultWallet sets or clears the space's recipient-wallet
// preference. A nil wallet clears it.
func (s *Service) UpdateSpaceDefaultWallet(ctx context.Context, spaceID space.ID, wallet *types.AccountID) error {
	caller, err := s.guard.Caller(ctx)
	if err != nil {
		return err
	}

	sp, err := s.spaces.RequireSpace(ctx, spaceID)
	if err != nil {
		return err
	}
	if err := sp.EnsureOwner(caller); err != nil {
		return err
	}

	if err := s.store.SetSpaceWallet(ctx, spaceID, wallet); err != nil {
		return err
	}

	s.hooks.EmitWalletChanged(ctx, hook.WalletScopeSpace, caller, wallet)

	return nil
}

// DeletePlan is an explicit extension point: the deactivation contract
// (refunds, index cleanup) is not specified yet, so the operation
// authenticates the caller and then refuses rather than pretending the
// plan was removed.
func (s *Service) DeletePlan(ctx context.Context, _ plan.ID) error {
	if _, err := s.guard.Caller(ctx); err != nil {
		return err
	}
	return ErrNotSupported
}

// Plan retrieves a plan by ID.
func (s *Service) Plan(ctx context.Context, planID plan.ID) (*plan.Plan, error) {
	return s.store.GetPlan(ctx, planID)
}

// PlansBySpace returns a space's plans in creation order.
func (s *Service) PlansBySpace(ctx context.Context, spaceID space.ID) ([]*plan.Plan, error) {
	return s.store.ListPlansBySpace(ctx, spaceID)
}

// ──────────────────────────────────────────────────
// Subscriptions
// ──────────────────────────────────────────────────

// Subscribe enrolls the caller in a plan and settles the first payment
// immediately: exactly the plan price moves from the caller to the
// resolved recipient, keep-alive. The subscription and its index
// entries are committed only after settlement succeeds.
func (s *Service) Subscribe(ctx context.Context, planID plan.ID, wallet *types.AccountID) (*subscription.Subscription, error) {
	caller, err := s.guard.Caller(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	active, err := s.store.HasActiveSubscription(ctx, caller, planID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrAlreadySubscribed
	}

	res, err := s.resolver.Recipient(ctx, p)
	if err != nil {
		return nil, err
	}

	receipt, err := s.settler.Settle(ctx, caller, res.Recipient, p.Price)
	if err != nil {
		return nil, err
	}

	sub := &subscription.Subscription{
		Entity:   types.NewEntity(caller),
		Wallet:   wallet,
		PlanID:   planID,
		IsActive: true,
	}

	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		// Funds moved but the enrollment could not be recorded. The
		// hosting execution environment rolls the whole state
		// transition back; standalone deployments need this trail.
		s.logger.Error("subscription commit failed after settlement",
			"payment_id", receipt.ID.String(),
			"plan_id", uint64(planID),
			"payer", receipt.Payer.String(),
			"error", err,
		)
		return nil, err
	}

	receipt.SubscriptionID = sub.ID
	receipt.PlanID = planID
	if err := s.store.CreatePayment(ctx, receipt); err != nil {
		// The receipt log is additive bookkeeping; the enrollment and
		// the transfer stand.
		s.logger.Warn("receipt not recorded",
			"payment_id", receipt.ID.String(),
			"subscription_id", uint64(sub.ID),
			"error", err,
		)
	}

	s.hooks.EmitRecipientResolved(ctx, string(res.Source))
	s.hooks.EmitSubscriptionCreated(ctx, sub)
	s.hooks.EmitPaymentSettled(ctx, receipt)

	s.logger.Info("subscribed",
		"subscription_id", uint64(sub.ID),
		"plan_id", uint64(planID),
		"amount", p.Price.String(),
		"recipient_source", string(res.Source),
	)

	return sub, nil
}

// UpdateSubscription replaces a subscription's wallet override. Only
// the subscription's patron may.
func (s *Service) UpdateSubscription(ctx context.Context, subID subscription.ID, newWallet *types.AccountID) (*subscription.Subscription, error) {
	caller, err := s.guard.Caller(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.store.GetSubscription(ctx, subID)
	if err != nil {
		return nil, err
	}

	if sub.Patron() != caller {
		return nil, ErrNotSubscriber
	}

	if types.EqualAccountRefs(newWallet, sub.Wallet) {
		return nil, ErrNothingToUpdate
	}

	old := *sub
	sub.Wallet = newWallet
	sub.Touch(caller)

	if err := s.store.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.hooks.EmitSubscriptionUpdated(ctx, &old, sub)

	return sub, nil
}

// UpdateDefaultWallet sets or clears the caller's default-wallet
// preference. A nil wallet clears it. The preference is recorded for a
// future payment path; Subscribe currently always debits the caller.
func (s *Service) UpdateDefaultWallet(ctx context.Context, wallet *types.AccountID) error {
	caller, err := s.guard.Caller(ctx)
	if err != nil {
		return err
	}

	if err := s.store.SetPatronWallet(ctx, caller, wallet); err != nil {
		return err
	}

	s.hooks.EmitWalletChanged(ctx, hook.WalletScopePatron, caller, wallet)

	return nil
}

// Unsubscribe is an explicit extension point: voluntary exit has no
// behavioral contract yet (refund policy, index cleanup), so the
// operation authenticates the caller and then refuses rather than
// pretending the subscription ended.
func (s *Service) Unsubscribe(ctx context.Context, _ plan.ID) error {
	if _, err := s.guard.Caller(ctx); err != nil {
		return err
	}
	return ErrNotSupported
}

// Subscription retrieves a subscription by ID.
func (s *Service) Subscription(ctx context.Context, subID subscription.ID) (*subscription.Subscription, error) {
	return s.store.GetSubscription(ctx, subID)
}

// SubscriptionsByPatron returns a patron's subscriptions.
func (s *Service) SubscriptionsByPatron(ctx context.Context, patron types.AccountID) ([]*subscription.Subscription, error) {
	return s.store.ListSubscriptionsByPatron(ctx, patron)
}

// SubscriptionsBySpace returns subscriptions to any of a space's plans.
func (s *Service) SubscriptionsBySpace(ctx context.Context, spaceID space.ID) ([]*subscription.Subscription, error) {
	return s.store.ListSubscriptionsBySpace(ctx, spaceID)
}

// SubscriptionsByPeriod returns the subscriptions a recurring-billing
// scheduler would re-charge for the given period.
func (s *Service) SubscriptionsByPeriod(ctx context.Context, period plan.Period) ([]*subscription.Subscription, error) {
	return s.store.ListSubscriptionsByPeriod(ctx, period.Key())
}

// ──────────────────────────────────────────────────
// Settlement receipts
// ──────────────────────────────────────────────────

// Payment retrieves a settlement receipt by ID.
func (s *Service) Payment(ctx context.Context, paymentID id.PaymentID) (*settlement.Receipt, error) {
	return s.store.GetPayment(ctx, paymentID)
}

// PaymentsBySubscription returns a subscription's settlement receipts.
func (s *Service) PaymentsBySubscription(ctx context.Context, subID subscription.ID) ([]*settlement.Receipt, error) {
	return s.store.ListPaymentsBySubscription(ctx, subID)
}

// PaymentsByPatron returns the receipts of payments made by a patron.
func (s *Service) PaymentsByPatron(ctx context.Context, patron types.AccountID) ([]*settlement.Receipt, error) {
	return s.store.ListPaymentsByPatron(ctx, patron)
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// ensureSubscriptionsManager checks whether the caller may manage a
// space's subscription plans. Delegated permission evaluation is a
// future extension; today only the space owner qualifies.
func (s *Service) ensureSubscriptionsManager(caller types.AccountID, sp *space.Space) error {
	if err := sp.EnsureOwner(caller); err != nil {
		return ErrNoPermissionToUpdatePlan
	}
	return nil
}
