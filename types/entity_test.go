package types

import (
	"testing"
	"time"
)

func TestNewEntity(t *testing.T) {
	e := NewEntity("alice")

	if e.Created.By != "alice" {
		t.Errorf("Created.By: got %s, want alice", e.Created.By)
	}
	if e.Created.At.IsZero() {
		t.Error("Created.At should be set")
	}
	if e.Updated != nil {
		t.Error("Updated should be nil for a fresh entity")
	}
	if e.IsUpdated() {
		t.Error("IsUpdated should be false for a fresh entity")
	}
}

func TestEntityTouch(t *testing.T) {
	e := NewEntity("alice")
	e.Touch("bob")

	if !e.IsUpdated() {
		t.Fatal("IsUpdated should be true after Touch")
	}
	if e.Updated.By != "bob" {
		t.Errorf("Updated.By: got %s, want bob", e.Updated.By)
	}
	if e.Created.By != "alice" {
		t.Errorf("Touch must not change Created.By, got %s", e.Created.By)
	}
}

func TestEntityAge(t *testing.T) {
	e := Entity{Created: Stamp{By: "alice", At: time.Now().Add(-time.Hour)}}

	if age := e.Age(); age < 59*time.Minute {
		t.Errorf("Age: got %v, want about an hour", age)
	}
}

func TestEqualAccountRefs(t *testing.T) {
	alice := AccountRef("alice")
	aliceToo := AccountRef("alice")
	bob := AccountRef("bob")

	tests := []struct {
		name string
		a, b *AccountID
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs set", nil, alice, false},
		{"set vs nil", alice, nil, false},
		{"same value", alice, aliceToo, true},
		{"different value", alice, bob, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EqualAccountRefs(tt.a, tt.b); got != tt.want {
				t.Errorf("Got %v, want %v", got, tt.want)
			}
		})
	}
}
