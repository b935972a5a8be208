package services

import (
	"time"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
)

// ExchangeSvcFacade is the conversion engine. It is stateless: the rate table
// or history is supplied per call, so the same engine serves current and
// historical conversions over any published snapshot.
type ExchangeSvcFacade interface {
	// Convert exchanges money into the target currency using the given table
	// and rounds to the target's minor unit. Identity conversions never
	// consult the table.
	Convert(money domain.Money, target domain.Currency, table *domain.RateTable) (domain.Money, error)

	// ConvertHistorical converts using the snapshot effective on the given
	// date.
	ConvertHistorical(money domain.Money, target domain.Currency, on time.Time, history *domain.RateHistory) (domain.Money, error)
}
