package services

import (
	"fmt"
	"time"

	"github.com/mkravets/fx_exchange_app/internal/apperrors"
	"github.com/mkravets/fx_exchange_app/internal/core/domain"
)

// ExchangeService converts monetary values between currencies using a rate
// table. It is stateless and safe for concurrent use; all inputs are
// immutable, so a failed conversion leaves nothing half-updated.
type ExchangeService struct{}

// NewExchangeService creates a new ExchangeService.
func NewExchangeService() *ExchangeService {
	return &ExchangeService{}
}

// Convert exchanges money into the target currency:
//
//	converted = amount * rateOf(target) / rateOf(source)
//
// Both rates come from the same base, so the base cancels out of the cross
// rate. The multiply happens before the divide and the quotient is rounded
// once, half away from zero, directly to the target's minor-unit count — a
// single rounding boundary, no intermediate truncation.
//
// When the source and target currencies are the same the table is not
// consulted at all (it may even be nil): a no-op conversion must not fail just
// because the table lacks that currency. The result is still rounded to the
// currency's minor unit.
func (s *ExchangeService) Convert(money domain.Money, target domain.Currency, table *domain.RateTable) (domain.Money, error) {
	if money.Currency.Code == target.Code {
		return money.RoundToCurrency(), nil
	}

	if table == nil {
		return domain.Money{}, fmt.Errorf("%w: no rate table available", apperrors.ErrMissingRate)
	}

	sourceRate, err := table.RateOf(money.Currency)
	if err != nil {
		return domain.Money{}, err
	}
	targetRate, err := table.RateOf(target)
	if err != nil {
		return domain.Money{}, err
	}

	converted := money.Amount.Mul(targetRate).DivRound(sourceRate, target.MinorUnits)
	return domain.NewMoney(converted, target), nil
}

// ConvertHistorical converts using the rates effective on the given date,
// resolved via the history's most-recent-known-rate-as-of policy. Identity
// conversions short-circuit before any snapshot is resolved.
func (s *ExchangeService) ConvertHistorical(money domain.Money, target domain.Currency, on time.Time, history *domain.RateHistory) (domain.Money, error) {
	if money.Currency.Code == target.Code {
		return money.RoundToCurrency(), nil
	}

	if history == nil {
		return domain.Money{}, fmt.Errorf("%w: no rate history available", apperrors.ErrNoHistoricalRate)
	}

	table, err := history.SnapshotFor(on)
	if err != nil {
		return domain.Money{}, err
	}
	return s.Convert(money, target, table)
}
