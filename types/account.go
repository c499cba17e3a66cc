package types

// AccountID identifies an account on the hosting chain. Identity
// extraction and cryptographic verification happen outside this module;
// by the time an AccountID reaches Patronage it is already
// authenticated.
type AccountID string

// IsZero reports whether the account is the empty value.
func (a AccountID) IsZero() bool { return a == "" }

// String returns the raw account identifier.
func (a AccountID) String() string { return string(a) }

// AccountRef returns a pointer to the given account. Convenience for
// the many optional wallet parameters in this module.
func AccountRef(a AccountID) *AccountID { return &a }

// EqualAccountRefs compares two optional accounts. Two nils are equal;
// a nil never equals a non-nil.
func EqualAccountRefs(a, b *AccountID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
