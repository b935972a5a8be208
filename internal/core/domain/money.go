package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkravets/fx_exchange_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is an amount of a single Currency. It is an immutable value type:
// every operation returns a new Money and never mutates its receiver.
//
// The amount is held at full precision. Construction does NOT round; rounding
// to the currency's minor unit happens only at explicit boundaries, via
// RoundToCurrency, so chained arithmetic never loses precision mid-computation.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney binds an amount to a currency. The amount is stored as given,
// unrounded.
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// Add returns m + other. Fails with ErrCurrencyMismatch when the currencies
// differ. The sum is exact; no rounding is applied.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Subtract returns m - other. Fails with ErrCurrencyMismatch when the
// currencies differ. The difference is exact; no rounding is applied.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Compare returns -1, 0 or 1 depending on whether m is less than, equal to or
// greater than other. Fails with ErrCurrencyMismatch when the currencies
// differ.
func (m Money) Compare(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.Amount.Cmp(other.Amount), nil
}

// RoundToCurrency rounds the amount to the currency's minor-unit digit count
// using round-half-away-from-zero, the canonical financial default.
func (m Money) RoundToCurrency() Money {
	return Money{Amount: m.Amount.Round(m.Currency.MinorUnits), Currency: m.Currency}
}

// Negate returns m with the sign of the amount flipped.
func (m Money) Negate() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative reports whether the amount is strictly below zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// MinorUnitAmount returns the amount expressed as a count of the currency's
// minor units (e.g., cents), rounded half away from zero. Fails with
// ErrOverflow when the result does not fit in an int64.
func (m Money) MinorUnitAmount() (int64, error) {
	units := m.Amount.Round(m.Currency.MinorUnits).Shift(m.Currency.MinorUnits)
	bi := units.BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("%w: %s does not fit in 64 bits of %s minor units", apperrors.ErrOverflow, m.Amount, m.Currency.Code)
	}
	return bi.Int64(), nil
}

// String renders the value as "<amount> <code>", e.g. "20.00 USD". The amount
// is printed as stored, without rounding.
func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency.Code
}

// ParseMoney parses the "<amount> <code>" form produced by String.
func ParseMoney(s string) (Money, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Money{}, fmt.Errorf("%w: money must be \"<amount> <code>\", got %q", apperrors.ErrValidation, s)
	}
	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return Money{}, fmt.Errorf("%w: invalid amount %q: %v", apperrors.ErrValidation, fields[0], err)
	}
	currency, err := LookupCurrency(fields[1])
	if err != nil {
		return Money{}, err
	}
	return NewMoney(amount, currency), nil
}

// moneyJSON is the interchange form: the amount as a decimal string and the
// currency as its 3-letter code.
type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Amount, Currency: m.Currency.Code})
}

// UnmarshalJSON implements json.Unmarshaler. The currency code must be in the
// catalog.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	currency, err := LookupCurrency(raw.Currency)
	if err != nil {
		return err
	}
	m.Amount = raw.Amount
	m.Currency = currency
	return nil
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency.Code != other.Currency.Code {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.Currency.Code, other.Currency.Code)
	}
	return nil
}
