package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkravets/fx_exchange_app/internal/apperrors"
	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	portssvc "github.com/mkravets/fx_exchange_app/internal/core/ports/services"
	"github.com/mkravets/fx_exchange_app/internal/dto"
	"github.com/mkravets/fx_exchange_app/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange-rate snapshots.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getCurrentRates)
		rates.GET("/:date", h.getHistoricalRates)
		rates.POST("/refresh", h.refreshRates)
	}
}

// getCurrentRates godoc
// @Summary Get the current rate table
// @Description Returns the most recently published exchange rates
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RateTableResponse
// @Failure 404 {object} map[string]string "No rates published yet"
// @Router /rates [get]
func (h *rateHandler) getCurrentRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	table, err := h.rateService.CurrentTable()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No rate table published yet")
			c.JSON(http.StatusNotFound, gin.H{"error": "No exchange rates available yet"})
			return
		}
		logger.Error("Failed to get current rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rates"})
		return
	}

	date, _, _ := h.rateService.History().Latest()
	c.JSON(http.StatusOK, dto.ToRateTableResponse(table, date))
}

// getHistoricalRates godoc
// @Summary Get a historical rate table
// @Description Returns the rates effective on the given date (most recent snapshot on or before it)
// @Tags rates
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.RateTableResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "No snapshot on or before the date"
// @Router /rates/{date} [get]
func (h *rateHandler) getHistoricalRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, err := time.Parse(time.DateOnly, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be formatted as YYYY-MM-DD"})
		return
	}

	table, err := h.rateService.History().SnapshotFor(date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoHistoricalRate) {
			logger.Warn("No historical rates for date", slog.Time("date", date))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get historical rates", slog.Time("date", date), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateTableResponse(table, domain.DayOf(date)))
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Fetches the latest rates from the feed and publishes a new snapshot
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 502 {object} map[string]string "Feed unavailable or rejected"
// @Router /rates/refresh [post]
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.rateService.RefreshRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to refresh rates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh exchange rates"})
		return
	}

	logger.Info("Exchange rates refreshed",
		slog.String("snapshot_id", snapshot.SnapshotID),
		slog.Time("effective_date", snapshot.EffectiveDate),
		slog.Int("rate_count", len(snapshot.Rates)),
	)
	c.JSON(http.StatusOK, dto.ToRefreshResponse(snapshot))
}
