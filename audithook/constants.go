package audithook

// Action constants for audit events.
const (
	// Plan actions
	ActionPlanCreated = "plan.created"
	ActionPlanUpdated = "plan.updated"

	// Subscription actions
	ActionSubscriptionCreated = "subscription.created"
	ActionSubscriptionUpdated = "subscription.updated"

	// Wallet actions
	ActionWalletChanged = "wallet.changed"

	// Settlement actions
	ActionPaymentSettled = "payment.settled"
)

// Resource constants for audit events.
const (
	ResourcePlan         = "plan"
	ResourceSubscription = "subscription"
	ResourceWallet       = "wallet"
	ResourcePayment      = "payment"
)

// Category constants for audit events.
const (
	CategoryBilling      = "billing"
	CategorySubscription = "subscription"
	CategoryPayment      = "payment"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
