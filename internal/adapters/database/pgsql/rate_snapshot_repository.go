package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PgxRateSnapshotRepository implements the ports RateSnapshotRepositoryFacade
// interface using pgxpool. Each snapshot is stored as one row per currency,
// keyed by (effective_date, currency_code), so re-saving a date replaces that
// day's rates wholesale.
type PgxRateSnapshotRepository struct {
	db *pgxpool.Pool
}

// NewRateSnapshotRepository creates a new PgxRateSnapshotRepository.
func NewRateSnapshotRepository(db *pgxpool.Pool) *PgxRateSnapshotRepository {
	return &PgxRateSnapshotRepository{db: db}
}

// SaveSnapshot upserts every rate row of the snapshot inside one transaction,
// so a concurrent reader never sees a day with half its currencies updated.
func (r *PgxRateSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO rate_snapshots (
			snapshot_id, base_code, effective_date, currency_code, rate, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (effective_date, currency_code) DO UPDATE SET
			snapshot_id = EXCLUDED.snapshot_id,
			base_code   = EXCLUDED.base_code,
			rate        = EXCLUDED.rate,
			fetched_at  = EXCLUDED.fetched_at
	`
	day := domain.DayOf(snapshot.EffectiveDate)
	for code, rate := range snapshot.Rates {
		_, err := tx.Exec(ctx, query,
			snapshot.SnapshotID, snapshot.BaseCode, day, code, rate, snapshot.FetchedAt,
		)
		if err != nil {
			return fmt.Errorf("error inserting rate row %s@%s: %w", code, day.Format(time.DateOnly), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing rate snapshot: %w", err)
	}
	return nil
}

// ListSnapshots reads every persisted rate row and reassembles the snapshots,
// oldest first.
func (r *PgxRateSnapshotRepository) ListSnapshots(ctx context.Context) ([]domain.RateSnapshot, error) {
	query := `
		SELECT snapshot_id, base_code, effective_date, currency_code, rate, fetched_at
		FROM rate_snapshots
		ORDER BY effective_date, currency_code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing rate snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.RateSnapshot
	for rows.Next() {
		var (
			snapshotID    string
			baseCode      string
			effectiveDate time.Time
			currencyCode  string
			rate          decimal.Decimal
			fetchedAt     time.Time
		)
		if err := rows.Scan(&snapshotID, &baseCode, &effectiveDate, &currencyCode, &rate, &fetchedAt); err != nil {
			return nil, fmt.Errorf("error scanning rate row: %w", err)
		}

		day := domain.DayOf(effectiveDate)
		if len(snapshots) == 0 || !snapshots[len(snapshots)-1].EffectiveDate.Equal(day) {
			snapshots = append(snapshots, domain.RateSnapshot{
				SnapshotID:    snapshotID,
				BaseCode:      baseCode,
				EffectiveDate: day,
				Rates:         map[string]decimal.Decimal{},
				FetchedAt:     fetchedAt,
			})
		}
		snapshots[len(snapshots)-1].Rates[currencyCode] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate rows: %w", err)
	}
	return snapshots, nil
}
