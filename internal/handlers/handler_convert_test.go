package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkravets/fx_exchange_app/internal/apperrors"
	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	portssvc "github.com/mkravets/fx_exchange_app/internal/core/ports/services"
	"github.com/mkravets/fx_exchange_app/internal/dto"
	"github.com/mkravets/fx_exchange_app/internal/handlers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) CurrentTable() (*domain.RateTable, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

func (m *MockRateService) History() *domain.RateHistory {
	args := m.Called()
	return args.Get(0).(*domain.RateHistory)
}

func (m *MockRateService) RefreshRates(ctx context.Context) (domain.RateSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateSnapshot), args.Error(1)
}

func (m *MockRateService) LoadHistory(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

// --- Mock ExchangeService ---
type MockExchangeService struct {
	mock.Mock
}

func (m *MockExchangeService) Convert(money domain.Money, target domain.Currency, table *domain.RateTable) (domain.Money, error) {
	args := m.Called(money, target, table)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockExchangeService) ConvertHistorical(money domain.Money, target domain.Currency, on time.Time, history *domain.RateHistory) (domain.Money, error) {
	args := m.Called(money, target, on, history)
	return args.Get(0).(domain.Money), args.Error(1)
}

var _ portssvc.ExchangeSvcFacade = (*MockExchangeService)(nil)

// --- Test Suite ---
type ConvertHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCurrencyService *MockCurrencyService
	mockRateService     *MockRateService
	mockExchangeService *MockExchangeService

	usd domain.Currency
	eur domain.Currency
}

func (suite *ConvertHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockCurrencyService = new(MockCurrencyService)
	suite.mockRateService = new(MockRateService)
	suite.mockExchangeService = new(MockExchangeService)

	services := &portssvc.ServiceContainer{
		Currency: suite.mockCurrencyService,
		Rates:    suite.mockRateService,
		Exchange: suite.mockExchangeService,
	}
	handlers.RegisterRoutes(suite.router, services)

	var err error
	suite.usd, err = domain.LookupCurrency("USD")
	suite.Require().NoError(err)
	suite.eur, err = domain.LookupCurrency("EUR")
	suite.Require().NoError(err)
}

func (suite *ConvertHandlerTestSuite) usdTable() *domain.RateTable {
	table, err := domain.NewRateTable(suite.usd, map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.90"),
	})
	suite.Require().NoError(err)
	return table
}

func (suite *ConvertHandlerTestSuite) postConvert(body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/convert", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ConvertHandlerTestSuite) TestConvert_Success() {
	table := suite.usdTable()
	source := domain.NewMoney(decimal.RequireFromString("100.00"), suite.usd)
	converted := domain.NewMoney(decimal.RequireFromString("90.00"), suite.eur)

	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "USD").Return(suite.usd, nil).Once()
	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "EUR").Return(suite.eur, nil).Once()
	suite.mockRateService.On("CurrentTable").Return(table, nil).Once()
	suite.mockExchangeService.On("Convert", source, suite.eur, table).Return(converted, nil).Once()

	w := suite.postConvert(gin.H{"amount": "100.00", "currency": "USD", "to": "EUR"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ConvertResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("EUR", resp.Result.Currency)
	suite.True(resp.Result.Amount.Equal(decimal.RequireFromString("90.00")))
	suite.Equal("USD", resp.From.Currency)
	suite.Empty(resp.RateDate)

	suite.mockExchangeService.AssertExpectations(suite.T())
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *ConvertHandlerTestSuite) TestConvert_IdentitySkipsRateTable() {
	source := domain.NewMoney(decimal.RequireFromString("100.005"), suite.usd)
	rounded := domain.NewMoney(decimal.RequireFromString("100.01"), suite.usd)

	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "USD").Return(suite.usd, nil).Twice()
	suite.mockExchangeService.On("Convert", source, suite.usd, (*domain.RateTable)(nil)).Return(rounded, nil).Once()

	w := suite.postConvert(gin.H{"amount": "100.005", "currency": "USD", "to": "USD"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "CurrentTable")
	suite.mockExchangeService.AssertExpectations(suite.T())
}

func (suite *ConvertHandlerTestSuite) TestConvert_HistoricalDate() {
	history := domain.NewRateHistory().WithSnapshot(
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), suite.usdTable())
	source := domain.NewMoney(decimal.RequireFromString("100.00"), suite.usd)
	converted := domain.NewMoney(decimal.RequireFromString("90.00"), suite.eur)

	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "USD").Return(suite.usd, nil).Once()
	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "EUR").Return(suite.eur, nil).Once()
	suite.mockRateService.On("History").Return(history).Once()
	suite.mockExchangeService.On("ConvertHistorical", source, suite.eur,
		mock.MatchedBy(func(on time.Time) bool {
			return on.Format(time.DateOnly) == "2023-03-15"
		}), history).Return(converted, nil).Once()

	w := suite.postConvert(gin.H{"amount": "100.00", "currency": "USD", "to": "EUR", "date": "2023-03-15"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ConvertResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2023-03-15", resp.RateDate)

	suite.mockRateService.AssertNotCalled(suite.T(), "CurrentTable")
	suite.mockExchangeService.AssertExpectations(suite.T())
}

func (suite *ConvertHandlerTestSuite) TestConvert_UnknownCurrencyRejectedByBinding() {
	w := suite.postConvert(gin.H{"amount": "100.00", "currency": "ZZZ", "to": "EUR"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCurrencyService.AssertNotCalled(suite.T(), "GetCurrencyByCode")
	suite.mockExchangeService.AssertNotCalled(suite.T(), "Convert")
}

func (suite *ConvertHandlerTestSuite) TestConvert_MissingAmountRejected() {
	w := suite.postConvert(gin.H{"currency": "USD", "to": "EUR"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExchangeService.AssertNotCalled(suite.T(), "Convert")
}

func (suite *ConvertHandlerTestSuite) TestConvert_NoTablePublished() {
	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "USD").Return(suite.usd, nil).Once()
	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "EUR").Return(suite.eur, nil).Once()
	suite.mockRateService.On("CurrentTable").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.postConvert(gin.H{"amount": "100.00", "currency": "USD", "to": "EUR"})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockExchangeService.AssertNotCalled(suite.T(), "Convert")
}

func (suite *ConvertHandlerTestSuite) TestConvert_NoHistoricalRate() {
	history := domain.NewRateHistory()
	source := domain.NewMoney(decimal.RequireFromString("100.00"), suite.usd)

	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "USD").Return(suite.usd, nil).Once()
	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "EUR").Return(suite.eur, nil).Once()
	suite.mockRateService.On("History").Return(history).Once()
	suite.mockExchangeService.On("ConvertHistorical", source, suite.eur, mock.Anything, history).
		Return(domain.Money{}, apperrors.ErrNoHistoricalRate).Once()

	w := suite.postConvert(gin.H{"amount": "100.00", "currency": "USD", "to": "EUR", "date": "2022-12-31"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ConvertHandlerTestSuite) TestGetCurrentRates_Success() {
	table := suite.usdTable()
	history := domain.NewRateHistory().WithSnapshot(
		time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), table)

	suite.mockRateService.On("CurrentTable").Return(table, nil).Once()
	suite.mockRateService.On("History").Return(history).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RateTableResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.BaseCurrencyCode)
	suite.Equal("2023-06-01", resp.Date)
	suite.True(resp.Rates["EUR"].Equal(decimal.RequireFromString("0.90")))
}

func (suite *ConvertHandlerTestSuite) TestGetCurrentRates_NonePublished() {
	suite.mockRateService.On("CurrentTable").Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ConvertHandlerTestSuite) TestGetHistoricalRates_BadDate() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/rates/not-a-date", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "History")
}

func (suite *ConvertHandlerTestSuite) TestRefreshRates_Success() {
	snapshot := domain.RateSnapshot{
		SnapshotID:    "f2c4a7de-1c3f-4a08-9a9a-13c742f2b981",
		BaseCode:      "EUR",
		EffectiveDate: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromInt(1),
			"USD": decimal.RequireFromString("1.0744"),
		},
	}
	suite.mockRateService.On("RefreshRates", mock.Anything).Return(snapshot, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/rates/refresh", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RefreshResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("EUR", resp.BaseCode)
	suite.Equal("2023-06-01", resp.EffectiveDate)
	suite.Equal(2, resp.RateCount)

	suite.mockRateService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestConvertHandler(t *testing.T) {
	suite.Run(t, new(ConvertHandlerTestSuite))
}
