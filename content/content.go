// Package content models the opaque content descriptor attached to
// subscription plans and its structural validation. The descriptor is
// never interpreted here: it is an address (or inline blob) that the
// surrounding platform renders.
package content

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalid is returned when a descriptor fails structural validation.
var ErrInvalid = errors.New("content: invalid descriptor")

// Kind discriminates the descriptor variants.
type Kind string

const (
	// KindNone is the absent descriptor.
	KindNone Kind = "none"
	// KindRaw is an inline blob stored directly on-chain.
	KindRaw Kind = "raw"
	// KindIPFS is a content-addressed IPFS CID.
	KindIPFS Kind = "ipfs"
)

// Content is an opaque validated descriptor for plan content.
type Content struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value,omitempty"`
}

// None returns the absent descriptor.
func None() Content { return Content{Kind: KindNone} }

// Raw returns an inline descriptor.
func Raw(v string) Content { return Content{Kind: KindRaw, Value: v} }

// IPFS returns a content-addressed descriptor.
func IPFS(cid string) Content { return Content{Kind: KindIPFS, Value: cid} }

// IsNone reports whether the descriptor is absent.
func (c Content) IsNone() bool { return c.Kind == KindNone || c.Kind == "" }

// Validator performs structural validation of a descriptor. No semantic
// interpretation happens behind this interface.
type Validator interface {
	Validate(c Content) error
}

// CID lengths accepted for KindIPFS: CIDv0 (base58, "Qm...") and CIDv1
// (base32).
const (
	cidV0Len = 46
	cidV1Len = 59
)

// StandardValidator is the default structural validator.
type StandardValidator struct {
	// MaxRawLen bounds inline descriptors. Zero means DefaultMaxRawLen.
	MaxRawLen int
}

// DefaultMaxRawLen is the inline descriptor bound used when
// StandardValidator.MaxRawLen is zero.
const DefaultMaxRawLen = 1024

// Validate implements Validator.
func (v StandardValidator) Validate(c Content) error {
	switch c.Kind {
	case KindNone, "":
		if c.Value != "" {
			return fmt.Errorf("%w: none descriptor carries a value", ErrInvalid)
		}
		return nil

	case KindRaw:
		maxLen := v.MaxRawLen
		if maxLen == 0 {
			maxLen = DefaultMaxRawLen
		}
		if c.Value == "" {
			return fmt.Errorf("%w: empty raw descriptor", ErrInvalid)
		}
		if len(c.Value) > maxLen {
			return fmt.Errorf("%w: raw descriptor exceeds %d bytes", ErrInvalid, maxLen)
		}
		if !utf8.ValidString(c.Value) {
			return fmt.Errorf("%w: raw descriptor is not valid UTF-8", ErrInvalid)
		}
		return nil

	case KindIPFS:
		if n := len(c.Value); n != cidV0Len && n != cidV1Len {
			return fmt.Errorf("%w: cid length %d, want %d or %d", ErrInvalid, n, cidV0Len, cidV1Len)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalid, c.Kind)
	}
}
