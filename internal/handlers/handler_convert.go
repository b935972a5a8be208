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

// convertHandler handles currency-conversion requests.
type convertHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
	rateService     portssvc.RateSvcFacade
	currencyService portssvc.CurrencySvcFacade
}

// newConvertHandler creates a new convertHandler.
func newConvertHandler(es portssvc.ExchangeSvcFacade, rs portssvc.RateSvcFacade, cs portssvc.CurrencySvcFacade) *convertHandler {
	return &convertHandler{exchangeService: es, rateService: rs, currencyService: cs}
}

// registerConvertRoutes registers the conversion route.
func registerConvertRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade, rateService portssvc.RateSvcFacade, currencyService portssvc.CurrencySvcFacade) {
	h := newConvertHandler(exchangeService, rateService, currencyService)
	rg.POST("/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts the amount via the base currency and rounds to the target's minor unit. An optional date selects the snapshot effective on that day.
// @Tags convert
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertRequest true "Conversion details"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "No rate for currency or date"
// @Router /convert [post]
func (h *convertHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	source, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), req.FromCurrencyCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), req.ToCurrencyCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	money := domain.NewMoney(req.Amount, source)

	var (
		result   domain.Money
		rateDate time.Time
	)
	if req.Date != "" {
		on, parseErr := time.Parse(time.DateOnly, req.Date)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be formatted as YYYY-MM-DD"})
			return
		}
		rateDate = domain.DayOf(on)
		result, err = h.exchangeService.ConvertHistorical(money, target, on, h.rateService.History())
	} else {
		// Identity conversions only round, so the current table is not needed
		// and a one-currency deployment still converts to itself.
		var table *domain.RateTable
		if source.Code != target.Code {
			table, err = h.rateService.CurrentTable()
			if err != nil {
				h.respondConvertError(c, logger, err)
				return
			}
		}
		result, err = h.exchangeService.Convert(money, target, table)
	}
	if err != nil {
		h.respondConvertError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConvertResponse(money, result, rateDate))
}

func (h *convertHandler) respondConvertError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnknownCurrency), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrMissingRate),
		errors.Is(err, apperrors.ErrNoHistoricalRate),
		errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Conversion failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
	}
}
