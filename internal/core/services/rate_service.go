package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mkravets/fx_exchange_app/internal/apperrors"
	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	"github.com/mkravets/fx_exchange_app/internal/core/ports/feeds"
	portsrepo "github.com/mkravets/fx_exchange_app/internal/core/ports/repositories"
)

// RateService owns the published rate table and history. Rates are refreshed
// by building a wholly new table/history and atomically swapping the
// references: readers in flight keep the snapshot they loaded, and nobody can
// observe a half-updated rate set.
type RateService struct {
	feed         feeds.RateFeed
	snapshotRepo portsrepo.RateSnapshotRepositoryFacade

	// publish guards the read-modify-write of the pointers below so two
	// concurrent refreshes cannot lose a history update. Readers never take it.
	publish sync.Mutex
	current atomic.Pointer[domain.RateTable]
	history atomic.Pointer[domain.RateHistory]
}

// NewRateService creates a RateService over the given feed and snapshot
// repository. The repository may be nil when persistence is not configured.
func NewRateService(feed feeds.RateFeed, snapshotRepo portsrepo.RateSnapshotRepositoryFacade) *RateService {
	s := &RateService{feed: feed, snapshotRepo: snapshotRepo}
	s.history.Store(domain.NewRateHistory())
	return s
}

// CurrentTable returns the most recently published rate table. Fails with
// ErrNotFound until the first successful refresh or history load.
func (s *RateService) CurrentTable() (*domain.RateTable, error) {
	table := s.current.Load()
	if table == nil {
		return nil, fmt.Errorf("%w: no rate table published yet", apperrors.ErrNotFound)
	}
	return table, nil
}

// History returns the published historical record.
func (s *RateService) History() *domain.RateHistory {
	return s.history.Load()
}

// RefreshRates fetches the latest rates from the feed, validates and persists
// them, then publishes the new table. Nothing is published when any step
// fails, so a failed refresh leaves the previous snapshot fully intact.
func (s *RateService) RefreshRates(ctx context.Context) (domain.RateSnapshot, error) {
	snapshot, err := s.feed.FetchLatest(ctx)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("failed to fetch latest rates: %w", err)
	}
	snapshot.SnapshotID = uuid.NewString()
	snapshot.FetchedAt = time.Now().UTC()

	table, err := snapshot.Table()
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("fetched rates failed validation: %w", err)
	}

	if s.snapshotRepo != nil {
		if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
			return domain.RateSnapshot{}, fmt.Errorf("failed to persist rate snapshot: %w", err)
		}
	}

	s.publish.Lock()
	s.current.Store(table)
	s.history.Store(s.history.Load().WithSnapshot(snapshot.EffectiveDate, table))
	s.publish.Unlock()

	return snapshot, nil
}

// LoadHistory bootstraps the historical record: persisted snapshots first,
// then the feed's full history layered on top (the feed is authoritative for
// days both sources know about). When no table has been published yet, the
// newest historical snapshot becomes the current table.
func (s *RateService) LoadHistory(ctx context.Context) error {
	history := domain.NewRateHistory()

	if s.snapshotRepo != nil {
		persisted, err := s.snapshotRepo.ListSnapshots(ctx)
		if err != nil {
			return fmt.Errorf("failed to list persisted snapshots: %w", err)
		}
		for _, snapshot := range persisted {
			table, err := snapshot.Table()
			if err != nil {
				return fmt.Errorf("persisted snapshot %s is invalid: %w", snapshot.EffectiveDate.Format(time.DateOnly), err)
			}
			history = history.WithSnapshot(snapshot.EffectiveDate, table)
		}
	}

	fetched, err := s.feed.FetchHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch rate history: %w", err)
	}
	for _, snapshot := range fetched {
		table, err := snapshot.Table()
		if err != nil {
			return fmt.Errorf("fetched snapshot %s is invalid: %w", snapshot.EffectiveDate.Format(time.DateOnly), err)
		}
		history = history.WithSnapshot(snapshot.EffectiveDate, table)
	}

	s.publish.Lock()
	s.history.Store(history)
	if s.current.Load() == nil {
		if _, latest, ok := history.Latest(); ok {
			s.current.Store(latest)
		}
	}
	s.publish.Unlock()

	return nil
}
