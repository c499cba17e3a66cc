package types

import "testing"

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   int64
		currency string
		display  string
	}{
		{"New", New(100, "SUB"), 100, "sub", "100 SUB"},
		{"New lowercases", New(4900, "Dot"), 4900, "dot", "4900 DOT"},
		{"Zero", Zero("SUB"), 0, "sub", "0 SUB"},
		{"Negative", New(-50, "sub"), -50, "sub", "-50 SUB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return New(100, "sub").Add(New(200, "sub")) }, New(300, "sub")},
		{"Subtract", func() Money { return New(500, "sub").Subtract(New(200, "sub")) }, New(300, "sub")},
		{"Multiply", func() Money { return New(100, "sub").Multiply(3) }, New(300, "sub")},
		{"Negate", func() Money { return New(100, "sub").Negate() }, New(-100, "sub")},
		{"Complex", func() Money {
			return New(1000, "sub").Add(New(500, "sub")).Multiply(2).Subtract(New(1000, "sub"))
		}, New(2000, "sub")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyComparisons(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"IsZero true", Zero("sub").IsZero(), true},
		{"IsZero false", New(1, "sub").IsZero(), false},
		{"IsPositive", New(1, "sub").IsPositive(), true},
		{"IsPositive zero", Zero("sub").IsPositive(), false},
		{"IsNegative", New(-1, "sub").IsNegative(), true},
		{"LessThan", New(1, "sub").LessThan(New(2, "sub")), true},
		{"GreaterThan", New(3, "sub").GreaterThan(New(2, "sub")), true},
		{"AtLeast equal", New(2, "sub").AtLeast(New(2, "sub")), true},
		{"AtLeast below", New(1, "sub").AtLeast(New(2, "sub")), false},
		{"Equal different currency", New(1, "sub").Equal(New(1, "dot")), false},
		{"SameCurrency true", New(1, "sub").SameCurrency(New(9, "sub")), true},
		{"SameCurrency false", New(1, "sub").SameCurrency(New(1, "dot")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for currency mismatch")
		}
	}()

	// This should panic
	_ = New(100, "sub").Add(New(100, "dot"))
}
