package services_test

import (
	"testing"
	"time"

	"github.com/mkravets/fx_exchange_app/internal/apperrors"
	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	"github.com/mkravets/fx_exchange_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ExchangeServiceTestSuite struct {
	suite.Suite
	service *services.ExchangeService

	usd domain.Currency
	eur domain.Currency
	jpy domain.Currency

	table *domain.RateTable
}

func (suite *ExchangeServiceTestSuite) SetupTest() {
	suite.service = services.NewExchangeService()

	var err error
	suite.usd, err = domain.LookupCurrency("USD")
	suite.Require().NoError(err)
	suite.eur, err = domain.LookupCurrency("EUR")
	suite.Require().NoError(err)
	suite.jpy, err = domain.LookupCurrency("JPY")
	suite.Require().NoError(err)

	suite.table, err = domain.NewRateTable(suite.usd, map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.90"),
		"JPY": decimal.NewFromInt(150),
	})
	suite.Require().NoError(err)
}

func (suite *ExchangeServiceTestSuite) money(amount string, currency domain.Currency) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency)
}

func (suite *ExchangeServiceTestSuite) TestConvert_USDToEUR() {
	result, err := suite.service.Convert(suite.money("100.00", suite.usd), suite.eur, suite.table)

	suite.Require().NoError(err)
	suite.Equal("EUR", result.Currency.Code)
	suite.True(result.Amount.Equal(decimal.RequireFromString("90.00")), "got %s", result.Amount)
}

func (suite *ExchangeServiceTestSuite) TestConvert_JPYToUSDRoundsHalfAwayFromZero() {
	// 100 JPY * (1/150) = 0.666... -> 0.67 USD
	result, err := suite.service.Convert(suite.money("100", suite.jpy), suite.usd, suite.table)

	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(decimal.RequireFromString("0.67")), "got %s", result.Amount)
}

func (suite *ExchangeServiceTestSuite) TestConvert_RoundsToTargetMinorUnit() {
	// EUR -> JPY has zero minor-unit digits.
	result, err := suite.service.Convert(suite.money("1.00", suite.eur), suite.jpy, suite.table)

	suite.Require().NoError(err)
	// 1 EUR * 150 / 0.90 = 166.66... -> 167
	suite.True(result.Amount.Equal(decimal.NewFromInt(167)), "got %s", result.Amount)
}

func (suite *ExchangeServiceTestSuite) TestConvert_IdentityIgnoresTable() {
	m := suite.money("100.005", suite.usd)

	// A nil table must not matter for a no-op conversion.
	result, err := suite.service.Convert(m, suite.usd, nil)

	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(decimal.RequireFromString("100.01")), "got %s", result.Amount)
	suite.Equal("USD", result.Currency.Code)
}

func (suite *ExchangeServiceTestSuite) TestConvert_MissingRate() {
	gbp, err := domain.LookupCurrency("GBP")
	suite.Require().NoError(err)

	_, err = suite.service.Convert(suite.money("10.00", suite.usd), gbp, suite.table)
	suite.ErrorIs(err, apperrors.ErrMissingRate)

	_, err = suite.service.Convert(suite.money("10.00", gbp), suite.usd, suite.table)
	suite.ErrorIs(err, apperrors.ErrMissingRate)
}

func (suite *ExchangeServiceTestSuite) TestConvert_NilTable() {
	_, err := suite.service.Convert(suite.money("10.00", suite.usd), suite.eur, nil)
	suite.ErrorIs(err, apperrors.ErrMissingRate)
}

func (suite *ExchangeServiceTestSuite) TestConvert_RoundTripWithinRoundingTolerance() {
	original := suite.money("100.00", suite.usd)

	toEUR, err := suite.service.Convert(original, suite.eur, suite.table)
	suite.Require().NoError(err)
	back, err := suite.service.Convert(toEUR, suite.usd, suite.table)
	suite.Require().NoError(err)

	diff, err := back.Subtract(original.RoundToCurrency())
	suite.Require().NoError(err)
	// One USD minor-unit rounding step at most.
	tolerance := decimal.RequireFromString("0.01")
	suite.True(diff.Amount.Abs().LessThanOrEqual(tolerance), "round trip drifted by %s", diff.Amount)
}

func (suite *ExchangeServiceTestSuite) TestConvertHistorical_PicksSnapshotAsOfDate() {
	january, err := domain.NewRateTable(suite.usd, map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.80"),
	})
	suite.Require().NoError(err)
	june, err := domain.NewRateTable(suite.usd, map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.95"),
	})
	suite.Require().NoError(err)

	history := domain.NewRateHistory()
	suite.Require().NoError(history.Add(historyDay(suite.T(), "2023-01-01"), january))
	suite.Require().NoError(history.Add(historyDay(suite.T(), "2023-06-01"), june))

	// 2023-03-15 falls back to the January snapshot.
	result, err := suite.service.ConvertHistorical(suite.money("100.00", suite.usd), suite.eur, historyDay(suite.T(), "2023-03-15"), history)
	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(decimal.RequireFromString("80.00")), "got %s", result.Amount)

	// Before the first snapshot there is nothing to convert with.
	_, err = suite.service.ConvertHistorical(suite.money("100.00", suite.usd), suite.eur, historyDay(suite.T(), "2022-12-31"), history)
	suite.ErrorIs(err, apperrors.ErrNoHistoricalRate)
}

func (suite *ExchangeServiceTestSuite) TestConvertHistorical_IdentityNeedsNoHistory() {
	result, err := suite.service.ConvertHistorical(suite.money("42.424", suite.usd), suite.usd, time.Now(), nil)

	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(decimal.RequireFromString("42.42")))
}

func historyDay(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, value)
	require.NoError(t, err)
	return d
}

func TestExchangeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeServiceTestSuite))
}
