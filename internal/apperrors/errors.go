package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnknownCurrency indicates a currency code outside the ISO-4217 catalog.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrCurrencyMismatch indicates arithmetic between two monetary values of
// different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrInvalidRate indicates a non-positive exchange rate.
var ErrInvalidRate = errors.New("invalid exchange rate")

// ErrMissingBaseRate indicates a rate table whose base currency is absent or
// whose base rate is not exactly 1.
var ErrMissingBaseRate = errors.New("missing base currency rate")

// ErrMissingRate indicates that a rate table has no entry for a currency.
var ErrMissingRate = errors.New("missing exchange rate")

// ErrNoHistoricalRate indicates that no rate snapshot exists on or before the
// requested date.
var ErrNoHistoricalRate = errors.New("no historical exchange rate")

// ErrDuplicateSnapshotDate indicates an attempt to register two rate snapshots
// for the same effective date.
var ErrDuplicateSnapshotDate = errors.New("duplicate snapshot date")

// ErrOverflow indicates that a decimal value does not fit the requested
// fixed-size representation.
var ErrOverflow = errors.New("amount overflow")
