package dto

import (
	"time"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the structure for a conversion request. Date is
// optional; when set ("YYYY-MM-DD") the conversion uses the rates effective
// on that day instead of the current table.
type ConvertRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"currency" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"to" binding:"required,currencycode"`
	Date             string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// MoneyResponse is the interchange form of a monetary value.
type MoneyResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ConvertResponse echoes the source value and carries the converted result.
type ConvertResponse struct {
	From     MoneyResponse `json:"from"`
	Result   MoneyResponse `json:"result"`
	RateDate string        `json:"rateDate,omitempty"`
}

// ToMoneyResponse converts a domain.Money to MoneyResponse DTO.
func ToMoneyResponse(m domain.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount, Currency: m.Currency.Code}
}

// ToConvertResponse assembles the conversion response. rateDate is zero for
// conversions against the current table.
func ToConvertResponse(from, result domain.Money, rateDate time.Time) ConvertResponse {
	resp := ConvertResponse{
		From:   ToMoneyResponse(from),
		Result: ToMoneyResponse(result),
	}
	if !rateDate.IsZero() {
		resp.RateDate = rateDate.Format(time.DateOnly)
	}
	return resp
}
