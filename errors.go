package patronage

import (
	"errors"
	"fmt"

	"github.com/spacefold/patronage/content"
	"github.com/spacefold/patronage/currency"
	"github.com/spacefold/patronage/identity"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/wallet"
)

// Sentinel errors for the operation surface.
var (
	// General errors
	ErrNotFound      = errors.New("patronage: not found")
	ErrAlreadyExists = errors.New("patronage: already exists")
	ErrInvalidInput  = errors.New("patronage: invalid input")

	// Plan errors
	ErrPlanNotFound = errors.New("patronage: subscription plan not found")
	// ErrNoPermissionToUpdatePlan is returned when the caller may not
	// manage the plan's subscriptions. Currently only the space owner
	// may; delegated permissions are a future extension.
	ErrNoPermissionToUpdatePlan = errors.New("patronage: no permission to update subscription plan")
	// ErrPriceBelowExistentialDeposit rejects plans priced below the
	// currency's minimum retainable balance: such a price could never
	// be transferred into an otherwise empty recipient account.
	ErrPriceBelowExistentialDeposit = errors.New("patronage: price below existential deposit")

	// Subscription errors
	ErrSubscriptionNotFound = errors.New("patronage: subscription not found")
	ErrAlreadySubscribed    = errors.New("patronage: already subscribed to this plan")
	ErrNotSubscriber        = errors.New("patronage: caller is not the subscriber")

	// Update errors
	ErrNothingToUpdate = errors.New("patronage: nothing to update")

	// ErrNotSupported marks entry points whose behavioral contract is
	// not yet specified. They fail loudly instead of pretending the
	// signature check was the operation.
	ErrNotSupported = errors.New("patronage: operation not supported yet")

	// Store errors
	ErrStoreClosed = errors.New("patronage: store is closed")
)

// Pass-through failures from external collaborators, re-exported so
// callers can match everything against one package.
var (
	ErrRecipientNotFound = wallet.ErrRecipientNotFound
	ErrSpaceNotFound     = space.ErrNotFound
	ErrNotSpaceOwner     = space.ErrNotOwner
	ErrInvalidContent    = content.ErrInvalid
	ErrInsufficientFunds = currency.ErrInsufficientFunds
	ErrWouldReapAccount  = currency.ErrWouldReapAccount
	ErrUnauthenticated   = identity.ErrUnauthenticated
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("patronage: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is any of the not-found kinds.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPlanNotFound) ||
		errors.Is(err, ErrSubscriptionNotFound) ||
		errors.Is(err, ErrSpaceNotFound) ||
		errors.Is(err, ErrRecipientNotFound)
}

// IsPermissionError returns true if the error indicates the caller may
// not perform the operation on an existing entity.
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrNoPermissionToUpdatePlan) ||
		errors.Is(err, ErrNotSubscriber) ||
		errors.Is(err, ErrNotSpaceOwner) ||
		errors.Is(err, ErrUnauthenticated)
}
