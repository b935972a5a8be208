package services

import (
	"context"
	"strings"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
)

// CurrencyService serves the static ISO-4217 catalog. The catalog is closed
// and immutable, so the service has no repository behind it and needs no
// synchronization.
type CurrencyService struct{}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService() *CurrencyService {
	return &CurrencyService{}
}

// GetCurrencyByCode resolves a currency by its 3-letter code. External input
// is normalized to upper case here; the catalog itself matches
// case-sensitively.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (domain.Currency, error) {
	return domain.LookupCurrency(strings.ToUpper(currencyCode))
}

// ListCurrencies returns all supported currencies, ordered by code.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return domain.Currencies(), nil
}
