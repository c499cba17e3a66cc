package plan

import "testing"

func TestPeriodValid(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		want   bool
	}{
		{"daily", Daily, true},
		{"weekly", Weekly, true},
		{"quarterly", Quarterly, true},
		{"yearly", Yearly, true},
		{"custom", Custom(7200), true},
		{"custom zero blocks", Period{Kind: PeriodCustom}, false},
		{"named with blocks", Period{Kind: PeriodDaily, CustomBlocks: 10}, false},
		{"unknown kind", Period{Kind: "hourly"}, false},
		{"zero value", Period{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.period.Valid(); got != tt.want {
				t.Errorf("Valid: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		period Period
		want   string
	}{
		{Daily, "daily"},
		{Weekly, "weekly"},
		{Quarterly, "quarterly"},
		{Yearly, "yearly"},
		{Custom(7200), "custom:7200"},
		{Custom(1), "custom:1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.period.Key(); got != tt.want {
				t.Errorf("Key: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPeriodKeyDistinguishesCustomCadences(t *testing.T) {
	if Custom(100).Key() == Custom(200).Key() {
		t.Error("different custom cadences must map to different keys")
	}
}
