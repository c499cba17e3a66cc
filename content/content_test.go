package content

import (
	"errors"
	"strings"
	"testing"
)

func TestStandardValidator(t *testing.T) {
	cidV0 := "Qm" + strings.Repeat("a", 44)
	cidV1 := "b" + strings.Repeat("a", 58)

	tests := []struct {
		name    string
		content Content
		wantErr bool
	}{
		{"none", None(), false},
		{"none with value", Content{Kind: KindNone, Value: "x"}, true},
		{"empty kind", Content{}, false},
		{"raw", Raw("ipfs key or inline descriptor"), false},
		{"raw empty", Content{Kind: KindRaw}, true},
		{"raw at limit", Raw(strings.Repeat("a", DefaultMaxRawLen)), false},
		{"raw over limit", Raw(strings.Repeat("a", DefaultMaxRawLen+1)), true},
		{"raw invalid utf8", Raw(string([]byte{0xff, 0xfe})), true},
		{"ipfs v0", IPFS(cidV0), false},
		{"ipfs v1", IPFS(cidV1), false},
		{"ipfs wrong length", IPFS("QmTooShort"), true},
		{"ipfs empty", IPFS(""), true},
		{"unknown kind", Content{Kind: "svg", Value: "x"}, true},
	}

	v := StandardValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.content)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("error should wrap ErrInvalid, got %v", err)
			}
		})
	}
}

func TestStandardValidatorCustomLimit(t *testing.T) {
	v := StandardValidator{MaxRawLen: 8}

	if err := v.Validate(Raw("12345678")); err != nil {
		t.Errorf("at limit should pass: %v", err)
	}
	if err := v.Validate(Raw("123456789")); err == nil {
		t.Error("over limit should fail")
	}
}

func TestContentIsNone(t *testing.T) {
	if !None().IsNone() {
		t.Error("None().IsNone should be true")
	}
	if !(Content{}).IsNone() {
		t.Error("zero Content should be none")
	}
	if Raw("x").IsNone() {
		t.Error("raw content is not none")
	}
}
