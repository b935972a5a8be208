package services

import (
	"context"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
)

// RateReaderSvc defines read access to the published rate snapshots.
type RateReaderSvc interface {
	// CurrentTable returns the most recently published rate table.
	CurrentTable() (*domain.RateTable, error)

	// History returns the published historical record. The returned history
	// is an immutable snapshot; refreshes publish a replacement.
	History() *domain.RateHistory
}

// RateRefresherSvc defines operations that pull fresh rates from the feed.
type RateRefresherSvc interface {
	// RefreshRates fetches the latest rates, persists them and publishes the
	// new table.
	RefreshRates(ctx context.Context) (domain.RateSnapshot, error)

	// LoadHistory bootstraps the in-memory history from persisted snapshots
	// and the feed's historical record.
	LoadHistory(ctx context.Context) error
}

// RateSvcFacade combines all rate-related service interfaces.
type RateSvcFacade interface {
	RateReaderSvc
	RateRefresherSvc
}
