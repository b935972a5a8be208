package services

import (
	"context"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
)

// CurrencyReaderSvc defines read operations over the currency catalog.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces. The
// catalog is closed, so there are no writer operations.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
