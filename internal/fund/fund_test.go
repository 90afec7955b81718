package fund

import "testing"

func TestSnapshot_Valid(t *testing.T) {
	tests := []struct {
		name string
		snap *Snapshot
		want bool
	}{
		{"nil snapshot", nil, false},
		{"positive NAV", &Snapshot{NAV: 1.23}, true},
		{"zero NAV", &Snapshot{NAV: 0}, false},
		{"negative NAV", &Snapshot{NAV: -0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHolding_MarketValueAndProfit(t *testing.T) {
	h := Holding{Amount: 10000, Shares: 8000, NAV: 1.5, Valid: true}

	if got := h.MarketValue(); got != 12000 {
		t.Errorf("MarketValue() = %v, want 12000", got)
	}
	if got := h.Profit(); got != 2000 {
		t.Errorf("Profit() = %v, want 2000", got)
	}
}

func TestHolding_InvalidHasNoValue(t *testing.T) {
	h := Holding{Amount: 10000, Shares: 8000, NAV: 1.5, Valid: false}

	if got := h.MarketValue(); got != 0 {
		t.Errorf("MarketValue() = %v, want 0 for invalid holding", got)
	}
	if got := h.Profit(); got != 0 {
		t.Errorf("Profit() = %v, want 0 for invalid holding", got)
	}
}
