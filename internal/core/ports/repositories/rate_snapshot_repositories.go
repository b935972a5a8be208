package repositories

import (
	"context"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
)

// RateSnapshotReader defines read operations for persisted rate snapshots.
type RateSnapshotReader interface {
	// ListSnapshots retrieves every persisted snapshot, oldest first.
	ListSnapshots(ctx context.Context) ([]domain.RateSnapshot, error)
}

// RateSnapshotWriter defines write operations for persisted rate snapshots.
type RateSnapshotWriter interface {
	// SaveSnapshot persists one day's rates. Saving the same effective date
	// again replaces that day's rows (the published in-memory snapshot is
	// never patched; persistence follows the same replace-wholesale policy).
	SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error
}

// RateSnapshotRepositoryFacade combines all rate snapshot repository interfaces.
type RateSnapshotRepositoryFacade interface {
	RateSnapshotReader
	RateSnapshotWriter
}
