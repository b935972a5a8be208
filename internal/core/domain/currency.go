package domain

import (
	"fmt"
	"sort"

	"github.com/mkravets/fx_exchange_app/internal/apperrors"
)

// Currency is an immutable ISO-4217 currency definition.
type Currency struct {
	Code        string `json:"currencyCode"` // 3-letter alphabetic code (e.g., "USD")
	NumericCode string `json:"numericCode"`  // 3-digit numeric code (e.g., "840")
	MinorUnits  int32  `json:"minorUnits"`   // digits after the decimal point (0-4)
	Name        string `json:"name"`         // e.g., "US Dollar"
}

// catalog is the closed set of supported currencies: the ones the ECB reports
// euro reference rates for. It is built once at init and never mutated, so it
// is safe for concurrent reads without locking.
var catalog = map[string]Currency{}

func init() {
	for _, c := range []Currency{
		{Code: "AUD", NumericCode: "036", MinorUnits: 2, Name: "Australian Dollar"},
		{Code: "BGN", NumericCode: "975", MinorUnits: 2, Name: "Bulgarian Lev"},
		{Code: "BRL", NumericCode: "986", MinorUnits: 2, Name: "Brazilian Real"},
		{Code: "CAD", NumericCode: "124", MinorUnits: 2, Name: "Canadian Dollar"},
		{Code: "CHF", NumericCode: "756", MinorUnits: 2, Name: "Swiss Franc"},
		{Code: "CNY", NumericCode: "156", MinorUnits: 2, Name: "Chinese Yuan"},
		{Code: "CZK", NumericCode: "203", MinorUnits: 2, Name: "Czech Koruna"},
		{Code: "DKK", NumericCode: "208", MinorUnits: 2, Name: "Danish Krone"},
		{Code: "EUR", NumericCode: "978", MinorUnits: 2, Name: "Euro"},
		{Code: "GBP", NumericCode: "826", MinorUnits: 2, Name: "Pound Sterling"},
		{Code: "HKD", NumericCode: "344", MinorUnits: 2, Name: "Hong Kong Dollar"},
		{Code: "HUF", NumericCode: "348", MinorUnits: 2, Name: "Hungarian Forint"},
		{Code: "IDR", NumericCode: "360", MinorUnits: 2, Name: "Indonesian Rupiah"},
		{Code: "ILS", NumericCode: "376", MinorUnits: 2, Name: "Israeli New Shekel"},
		{Code: "INR", NumericCode: "356", MinorUnits: 2, Name: "Indian Rupee"},
		{Code: "ISK", NumericCode: "352", MinorUnits: 0, Name: "Icelandic Krona"},
		{Code: "JPY", NumericCode: "392", MinorUnits: 0, Name: "Japanese Yen"},
		{Code: "KRW", NumericCode: "410", MinorUnits: 0, Name: "South Korean Won"},
		{Code: "MXN", NumericCode: "484", MinorUnits: 2, Name: "Mexican Peso"},
		{Code: "MYR", NumericCode: "458", MinorUnits: 2, Name: "Malaysian Ringgit"},
		{Code: "NOK", NumericCode: "578", MinorUnits: 2, Name: "Norwegian Krone"},
		{Code: "NZD", NumericCode: "554", MinorUnits: 2, Name: "New Zealand Dollar"},
		{Code: "PHP", NumericCode: "608", MinorUnits: 2, Name: "Philippine Peso"},
		{Code: "PLN", NumericCode: "985", MinorUnits: 2, Name: "Polish Zloty"},
		{Code: "RON", NumericCode: "946", MinorUnits: 2, Name: "Romanian Leu"},
		{Code: "RUB", NumericCode: "643", MinorUnits: 2, Name: "Russian Rouble"},
		{Code: "SEK", NumericCode: "752", MinorUnits: 2, Name: "Swedish Krona"},
		{Code: "SGD", NumericCode: "702", MinorUnits: 2, Name: "Singapore Dollar"},
		{Code: "THB", NumericCode: "764", MinorUnits: 2, Name: "Thai Baht"},
		{Code: "TRY", NumericCode: "949", MinorUnits: 2, Name: "Turkish Lira"},
		{Code: "USD", NumericCode: "840", MinorUnits: 2, Name: "US Dollar"},
		{Code: "ZAR", NumericCode: "710", MinorUnits: 2, Name: "South African Rand"},
	} {
		catalog[c.Code] = c
	}
}

// LookupCurrency resolves a 3-letter ISO-4217 code to its catalog entry.
// The match is exact and case-sensitive; callers normalizing external input
// uppercase it before calling. Returns ErrUnknownCurrency for codes outside
// the catalog.
func LookupCurrency(code string) (Currency, error) {
	c, ok := catalog[code]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, code)
	}
	return c, nil
}

// Currencies returns every catalog entry, ordered by code.
func Currencies() []Currency {
	out := make([]Currency, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
