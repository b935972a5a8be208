package services

import (
	"github.com/mkravets/fx_exchange_app/internal/core/ports/feeds"
	portsrepo "github.com/mkravets/fx_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/mkravets/fx_exchange_app/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies.
func NewContainer(feed feeds.RateFeed, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Currency: NewCurrencyService(),
		Rates:    NewRateService(feed, repos.RateSnapshotRepo),
		Exchange: NewExchangeService(),
	}
}

// Interface implementation checks.
var (
	_ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)
	_ portssvc.RateSvcFacade     = (*RateService)(nil)
	_ portssvc.ExchangeSvcFacade = (*ExchangeService)(nil)
)
