// Package space defines the contract with the platform's content-space
// directory. The directory (ownership records included) lives outside
// this module; Patronage only resolves spaces and checks ownership
// through the Directory interface.
package space

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spacefold/patronage/types"
)

// ID identifies a content space.
type ID uint64

// Sentinel errors surfaced by directory implementations.
var (
	ErrNotFound = errors.New("space: not found")
	ErrNotOwner = errors.New("space: caller is not the space owner")
)

// Space is the directory's view of a content space. Only the fields
// Patronage consults are modeled.
type Space struct {
	ID    ID              `json:"id"`
	Owner types.AccountID `json:"owner"`
}

// EnsureOwner returns ErrNotOwner unless the given account owns the space.
func (s *Space) EnsureOwner(who types.AccountID) error {
	if s.Owner != who {
		return fmt.Errorf("%w: space %d", ErrNotOwner, s.ID)
	}
	return nil
}

// Directory resolves spaces by ID. Implementations are injected at
// construction time.
type Directory interface {
	// RequireSpace returns the space or ErrNotFound.
	RequireSpace(ctx context.Context, id ID) (*Space, error)
}

// DirectoryFunc is an adapter to use a plain function as a Directory.
type DirectoryFunc func(ctx context.Context, id ID) (*Space, error)

// RequireSpace implements Directory.
func (f DirectoryFunc) RequireSpace(ctx context.Context, id ID) (*Space, error) {
	return f(ctx, id)
}

// StaticDirectory is a map-backed Directory for tests and wiring demos.
type StaticDirectory struct {
	mu     sync.RWMutex
	spaces map[ID]*Space
}

// NewStaticDirectory creates an empty StaticDirectory.
func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{spaces: make(map[ID]*Space)}
}

// Add registers a space.
func (d *StaticDirectory) Add(s *Space) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.spaces[s.ID] = s
}

// RequireSpace implements Directory.
func (d *StaticDirectory) RequireSpace(_ context.Context, id ID) (*Space, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if s, ok := d.spaces[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: space %d", ErrNotFound, id)
}
