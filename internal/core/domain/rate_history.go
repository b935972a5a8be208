package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/mkravets/fx_exchange_app/internal/apperrors"
)

// RateHistory holds dated rate snapshots and answers "what were the rates as
// of this date". Snapshots are kept sorted by effective date; dates are
// normalized to UTC day granularity.
//
// A history is mutable while being assembled (Add) and treated as immutable
// once published: refreshes build a new history with WithSnapshot and swap the
// reference wholesale.
type RateHistory struct {
	snapshots []datedTable
}

type datedTable struct {
	date  time.Time
	table *RateTable
}

// NewRateHistory returns an empty history.
func NewRateHistory() *RateHistory {
	return &RateHistory{}
}

// DayOf truncates a time to its UTC calendar day, the granularity at which
// snapshots are keyed.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Add registers a snapshot for the given effective date. Fails with
// ErrDuplicateSnapshotDate when a snapshot for that day is already present.
func (h *RateHistory) Add(date time.Time, table *RateTable) error {
	day := DayOf(date)
	idx := h.search(day)
	if idx < len(h.snapshots) && h.snapshots[idx].date.Equal(day) {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateSnapshotDate, day.Format(time.DateOnly))
	}
	h.snapshots = append(h.snapshots, datedTable{})
	copy(h.snapshots[idx+1:], h.snapshots[idx:])
	h.snapshots[idx] = datedTable{date: day, table: table}
	return nil
}

// WithSnapshot returns a new history with the snapshot for the given day
// replaced or inserted. The receiver is left untouched, so a published history
// stays valid for readers in flight.
func (h *RateHistory) WithSnapshot(date time.Time, table *RateTable) *RateHistory {
	day := DayOf(date)
	out := &RateHistory{snapshots: make([]datedTable, len(h.snapshots), len(h.snapshots)+1)}
	copy(out.snapshots, h.snapshots)

	idx := out.search(day)
	if idx < len(out.snapshots) && out.snapshots[idx].date.Equal(day) {
		out.snapshots[idx] = datedTable{date: day, table: table}
		return out
	}
	out.snapshots = append(out.snapshots, datedTable{})
	copy(out.snapshots[idx+1:], out.snapshots[idx:])
	out.snapshots[idx] = datedTable{date: day, table: table}
	return out
}

// SnapshotFor returns the snapshot with the greatest effective date on or
// before the requested date (most-recent-known-rate-as-of). Fails with
// ErrNoHistoricalRate when no snapshot exists on or before it.
func (h *RateHistory) SnapshotFor(date time.Time) (*RateTable, error) {
	day := DayOf(date)
	// First index strictly after the requested day; the entry before it is
	// the most recent snapshot not newer than the day.
	idx := sort.Search(len(h.snapshots), func(i int) bool {
		return h.snapshots[i].date.After(day)
	})
	if idx == 0 {
		return nil, fmt.Errorf("%w: nothing on or before %s", apperrors.ErrNoHistoricalRate, day.Format(time.DateOnly))
	}
	return h.snapshots[idx-1].table, nil
}

// Latest returns the most recent snapshot, or false when the history is empty.
func (h *RateHistory) Latest() (time.Time, *RateTable, bool) {
	if len(h.snapshots) == 0 {
		return time.Time{}, nil, false
	}
	last := h.snapshots[len(h.snapshots)-1]
	return last.date, last.table, true
}

// Len returns the number of snapshots.
func (h *RateHistory) Len() int {
	return len(h.snapshots)
}

// search returns the insertion index for day among the sorted snapshots.
func (h *RateHistory) search(day time.Time) int {
	return sort.Search(len(h.snapshots), func(i int) bool {
		return !h.snapshots[i].date.Before(day)
	})
}
