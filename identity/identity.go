// Package identity resolves the authenticated caller of an operation.
//
// Signature verification happens in the hosting environment before a
// request reaches Patronage; this package only carries the resulting
// account identity to the service. The default Guard reads the caller
// from the request context, matching how the surrounding platform
// threads per-request identity.
package identity

import (
	"context"
	"errors"

	"github.com/spacefold/patronage/types"
)

// ErrUnauthenticated is returned when no caller identity is present.
var ErrUnauthenticated = errors.New("identity: unauthenticated request")

// Guard exposes the authenticated caller of the current request.
type Guard interface {
	// Caller returns the caller's account or ErrUnauthenticated.
	Caller(ctx context.Context) (types.AccountID, error)
}

// GuardFunc is an adapter to use a plain function as a Guard.
type GuardFunc func(ctx context.Context) (types.AccountID, error)

// Caller implements Guard.
func (f GuardFunc) Caller(ctx context.Context) (types.AccountID, error) {
	return f(ctx)
}

type callerKey struct{}

// WithCaller returns a context carrying the authenticated caller.
func WithCaller(ctx context.Context, who types.AccountID) context.Context {
	return context.WithValue(ctx, callerKey{}, who)
}

// ContextGuard reads the caller placed in the context by WithCaller.
// It is the default Guard used by the service.
type ContextGuard struct{}

// Caller implements Guard.
func (ContextGuard) Caller(ctx context.Context) (types.AccountID, error) {
	who, ok := ctx.Value(callerKey{}).(types.AccountID)
	if !ok || who.IsZero() {
		return "", ErrUnauthenticated
	}
	return who, nil
}
