package dto

import (
	"time"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateTableResponse defines the API shape of one rate snapshot: every rate is
// relative to the base currency, whose own rate is always 1.
type RateTableResponse struct {
	BaseCurrencyCode string                     `json:"baseCurrencyCode"`
	Date             string                     `json:"date,omitempty"`
	Rates            map[string]decimal.Decimal `json:"rates"`
}

// ToRateTableResponse converts a domain.RateTable to RateTableResponse DTO.
// date may be zero when the snapshot date is not known to the caller.
func ToRateTableResponse(table *domain.RateTable, date time.Time) RateTableResponse {
	resp := RateTableResponse{
		BaseCurrencyCode: table.Base().Code,
		Rates:            table.Rates(),
	}
	if !date.IsZero() {
		resp.Date = date.Format(time.DateOnly)
	}
	return resp
}

// RefreshResponse reports the outcome of a rate refresh.
type RefreshResponse struct {
	SnapshotID    string `json:"snapshotID"`
	BaseCode      string `json:"baseCode"`
	EffectiveDate string `json:"effectiveDate"`
	RateCount     int    `json:"rateCount"`
}

// ToRefreshResponse converts a published domain.RateSnapshot to RefreshResponse DTO.
func ToRefreshResponse(snapshot domain.RateSnapshot) RefreshResponse {
	return RefreshResponse{
		SnapshotID:    snapshot.SnapshotID,
		BaseCode:      snapshot.BaseCode,
		EffectiveDate: domain.DayOf(snapshot.EffectiveDate).Format(time.DateOnly),
		RateCount:     len(snapshot.Rates),
	}
}
