// Package fund defines the domain model shared by the refresh engine, the
// data providers, and the holdings store: fund snapshots as reported by a
// provider, and per-client holding records.
package fund

import "time"

// PeriodReturns holds a fund's trailing returns in percent. A nil field
// means the provider did not report that period (young funds).
type PeriodReturns struct {
	OneMonth   *float64 `json:"one_month,omitempty"`
	ThreeMonth *float64 `json:"three_month,omitempty"`
	SixMonth   *float64 `json:"six_month,omitempty"`
	OneYear    *float64 `json:"one_year,omitempty"`
}

// Snapshot is the refreshed view of a single fund: identity, latest unit
// NAV, and trailing period returns. Snapshots are produced by a data
// provider and consumed by the refresh engine; they are never mutated after
// creation.
type Snapshot struct {
	Code    string        `json:"code"`
	Name    string        `json:"name"`
	NAV     float64       `json:"nav"`
	NAVDate time.Time     `json:"nav_date"`
	Returns PeriodReturns `json:"returns"`
}

// Valid reports whether the snapshot carries usable pricing data. A fund is
// valid if and only if its NAV is positive; the NAV date is deliberately not
// considered, stale data is still valid data.
func (s *Snapshot) Valid() bool {
	return s != nil && s.NAV > 0
}

// Holding is one client's purchase record for a fund plus the most recently
// refreshed fund data.
type Holding struct {
	ID           string    `json:"id"`
	Client       string    `json:"client"`
	Code         string    `json:"code"`
	Amount       float64   `json:"amount"`
	Shares       float64   `json:"shares"`
	PurchaseDate time.Time `json:"purchase_date"`

	// Refreshable fields, overwritten on every successful refresh.
	Name    string        `json:"name"`
	NAV     float64       `json:"nav"`
	NAVDate time.Time     `json:"nav_date"`
	Valid   bool          `json:"valid"`
	Returns PeriodReturns `json:"returns"`
}

// MarketValue returns the holding's shares priced at the latest NAV, or 0
// when the holding has no valid pricing data.
func (h *Holding) MarketValue() float64 {
	if !h.Valid {
		return 0
	}
	return h.Shares * h.NAV
}

// Profit returns market value minus purchase cost, or 0 when the holding has
// no valid pricing data.
func (h *Holding) Profit() float64 {
	if !h.Valid {
		return 0
	}
	return h.MarketValue() - h.Amount
}
