package types

import "time"

// Stamp records who performed a state change and when.
type Stamp struct {
	By AccountID `json:"by"`
	At time.Time `json:"at"`
}

// NewStamp creates a Stamp for the given account at the current time.
func NewStamp(by AccountID) Stamp {
	return Stamp{By: by, At: time.Now().UTC()}
}

// Entity is the base type for Patronage entities. Creation metadata is
// always present; update metadata only after the first mutation.
// Embed this in domain types to get consistent audit handling.
type Entity struct {
	Created Stamp  `json:"created"`
	Updated *Stamp `json:"updated,omitempty"`
}

// NewEntity creates an Entity stamped as created by the given account.
func NewEntity(by AccountID) Entity {
	return Entity{Created: NewStamp(by)}
}

// Touch records a mutation by the given account.
func (e *Entity) Touch(by AccountID) {
	s := NewStamp(by)
	e.Updated = &s
}

// Age returns how long ago the entity was created.
func (e Entity) Age() time.Duration {
	return time.Since(e.Created.At)
}

// IsUpdated reports whether the entity has been mutated since creation.
func (e Entity) IsUpdated() bool { return e.Updated != nil }
