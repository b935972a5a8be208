package feeds

import (
	"context"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
)

// RateFeed is the outbound port to a published exchange-rate source. The core
// only consumes already-parsed snapshots; fetching and format details live in
// the adapter behind this interface.
type RateFeed interface {
	// FetchLatest retrieves the most recent day's rates.
	FetchLatest(ctx context.Context) (domain.RateSnapshot, error)

	// FetchHistory retrieves the full historical record, oldest first.
	FetchHistory(ctx context.Context) ([]domain.RateSnapshot, error)
}
