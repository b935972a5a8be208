package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is the externally supplied form of one day's rates: the shape
// the feed adapter produces and the snapshot repository persists. Rates are
// keyed by currency code and expressed relative to BaseCode.
type RateSnapshot struct {
	SnapshotID    string                     `json:"snapshotID"` // assigned when persisted (e.g., UUID)
	BaseCode      string                     `json:"baseCode"`
	EffectiveDate time.Time                  `json:"effectiveDate"`
	Rates         map[string]decimal.Decimal `json:"rates"`
	FetchedAt     time.Time                  `json:"fetchedAt"`
}

// Table validates the snapshot and builds the immutable RateTable it
// describes. The base currency must be in the catalog and carry rate 1.
func (s RateSnapshot) Table() (*RateTable, error) {
	base, err := LookupCurrency(s.BaseCode)
	if err != nil {
		return nil, err
	}
	return NewRateTable(base, s.Rates)
}
