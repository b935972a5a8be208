package domain

import (
	"fmt"

	"github.com/mkravets/fx_exchange_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateTable maps currency codes to exchange rates expressed relative to a
// single base currency. The base currency's own rate is always exactly 1.
//
// A RateTable is immutable once built. Refreshed rates are published as a new
// table swapped in wholesale, never patched in place, so a reader can never
// observe a half-updated rate set.
type RateTable struct {
	base  Currency
	rates map[string]decimal.Decimal
}

var one = decimal.NewFromInt(1)

// NewRateTable validates the entries and builds a table. Entry keys are
// 3-letter currency codes. It fails with:
//   - ErrUnknownCurrency for a code outside the catalog,
//   - ErrInvalidRate for a non-positive rate,
//   - ErrMissingBaseRate when the base currency is absent or its rate is not
//     exactly 1 (base-relative rates of 1 are the contract; nothing is
//     auto-scaled).
func NewRateTable(base Currency, entries map[string]decimal.Decimal) (*RateTable, error) {
	rates := make(map[string]decimal.Decimal, len(entries))
	for code, rate := range entries {
		if _, err := LookupCurrency(code); err != nil {
			return nil, err
		}
		if rate.Sign() <= 0 {
			return nil, fmt.Errorf("%w: %s rate %s must be positive", apperrors.ErrInvalidRate, code, rate)
		}
		rates[code] = rate
	}

	baseRate, ok := rates[base.Code]
	if !ok {
		return nil, fmt.Errorf("%w: base %s has no entry", apperrors.ErrMissingBaseRate, base.Code)
	}
	if !baseRate.Equal(one) {
		return nil, fmt.Errorf("%w: base %s rate is %s, want 1", apperrors.ErrMissingBaseRate, base.Code, baseRate)
	}

	return &RateTable{base: base, rates: rates}, nil
}

// Base returns the currency all rates are expressed against.
func (t *RateTable) Base() Currency {
	return t.base
}

// RateOf returns the rate for the given currency relative to the base. Fails
// with ErrMissingRate when the table has no entry for it.
func (t *RateTable) RateOf(currency Currency) (decimal.Decimal, error) {
	rate, ok := t.rates[currency.Code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", apperrors.ErrMissingRate, currency.Code)
	}
	return rate, nil
}

// Rates returns a copy of the rate entries, keyed by currency code.
func (t *RateTable) Rates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}

// Len returns the number of entries, base included.
func (t *RateTable) Len() int {
	return len(t.rates)
}
