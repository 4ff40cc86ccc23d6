package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/shared"
)

func newFxService(currencyRepo *MockCurrencyRepository, rateRepo *MockExchangeRateRepository, auditRepo *MockAuditRepository) *FxService {
	return NewFxService(currencyRepo, rateRepo, audit.NewTrail(auditRepo), passthroughTx{})
}

func TestFxService_CreateCurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("registers currency", func(t *testing.T) {
		currencyRepo := new(MockCurrencyRepository)
		auditRepo := new(MockAuditRepository)
		svc := newFxService(currencyRepo, new(MockExchangeRateRepository), auditRepo)

		currencyRepo.On("FindByCode", ctx, "EUR").Return(nil, shared.ErrNotFound)
		currencyRepo.On("Save", ctx, mock.AnythingOfType("*accounting.Currency")).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.CreateCurrency(ctx, CreateCurrencyRequest{
			Code:     "eur",
			Name:     "Euro",
			Symbol:   "€",
			BaseRate: decimal.RequireFromString("655.957"),
			Actor:    "aminata",
		})

		require.NoError(t, err)
		assert.Equal(t, "EUR", resp.Code)
		assert.True(t, resp.Active)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		currencyRepo := new(MockCurrencyRepository)
		svc := newFxService(currencyRepo, new(MockExchangeRateRepository), new(MockAuditRepository))

		existing, err := accounting.NewCurrency("EUR", "Euro", "€", decimal.RequireFromString("655.957"))
		require.NoError(t, err)
		currencyRepo.On("FindByCode", ctx, "EUR").Return(existing, nil)

		_, err = svc.CreateCurrency(ctx, CreateCurrencyRequest{
			Code:     "EUR",
			Name:     "Euro",
			BaseRate: decimal.RequireFromString("655.957"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestFxService_UpsertMonthlyRate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates rate for a new period", func(t *testing.T) {
		rateRepo := new(MockExchangeRateRepository)
		auditRepo := new(MockAuditRepository)
		svc := newFxService(new(MockCurrencyRepository), rateRepo, auditRepo)

		rateRepo.On("FindByPeriod", ctx, "USD", 3, 2026).Return(nil, nil)
		rateRepo.On("Save", ctx, mock.AnythingOfType("*accounting.ExchangeRate")).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.UpsertMonthlyRate(ctx, UpsertRateRequest{
			CurrencyCode: "USD",
			Month:        3,
			Year:         2026,
			Rate:         decimal.RequireFromString("612.5"),
			Source:       "BCEAO",
			Actor:        "aminata",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Month)
		assert.True(t, resp.Rate.Equal(decimal.RequireFromString("612.5")))
	})

	t.Run("normalizes the currency code", func(t *testing.T) {
		rateRepo := new(MockExchangeRateRepository)
		auditRepo := new(MockAuditRepository)
		svc := newFxService(new(MockCurrencyRepository), rateRepo, auditRepo)

		existing, err := accounting.NewExchangeRate("USD", 3, 2026, decimal.RequireFromString("610"), "BCEAO")
		require.NoError(t, err)
		rateRepo.On("FindByPeriod", ctx, "USD", 3, 2026).Return(existing, nil)
		rateRepo.On("Save", ctx, existing).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.UpsertMonthlyRate(ctx, UpsertRateRequest{
			CurrencyCode: "usd",
			Month:        3,
			Year:         2026,
			Rate:         decimal.RequireFromString("618"),
		})

		require.NoError(t, err)
		assert.Equal(t, "USD", resp.CurrencyCode)
		assert.True(t, resp.Rate.Equal(decimal.RequireFromString("618")))
	})

	t.Run("replaces the rate of an existing period", func(t *testing.T) {
		rateRepo := new(MockExchangeRateRepository)
		auditRepo := new(MockAuditRepository)
		svc := newFxService(new(MockCurrencyRepository), rateRepo, auditRepo)

		existing, err := accounting.NewExchangeRate("USD", 3, 2026, decimal.RequireFromString("610"), "BCEAO")
		require.NoError(t, err)
		rateRepo.On("FindByPeriod", ctx, "USD", 3, 2026).Return(existing, nil)
		rateRepo.On("Save", ctx, existing).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.UpsertMonthlyRate(ctx, UpsertRateRequest{
			CurrencyCode: "USD",
			Month:        3,
			Year:         2026,
			Rate:         decimal.RequireFromString("615"),
			Source:       "BCEAO",
		})

		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
		assert.True(t, resp.Rate.Equal(decimal.RequireFromString("615")))
	})
}

func TestFxService_RateFor(t *testing.T) {
	ctx := context.Background()
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("uses the monthly rate when present", func(t *testing.T) {
		rateRepo := new(MockExchangeRateRepository)
		svc := newFxService(new(MockCurrencyRepository), rateRepo, new(MockAuditRepository))

		rate, err := accounting.NewExchangeRate("USD", 3, 2026, decimal.RequireFromString("612.5"), "BCEAO")
		require.NoError(t, err)
		rateRepo.On("FindByPeriod", ctx, "USD", 3, 2026).Return(rate, nil)

		got, err := svc.RateFor(ctx, "USD", march)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("612.5")))
	})

	t.Run("falls back to the currency base rate", func(t *testing.T) {
		currencyRepo := new(MockCurrencyRepository)
		rateRepo := new(MockExchangeRateRepository)
		svc := newFxService(currencyRepo, rateRepo, new(MockAuditRepository))

		currency, err := accounting.NewCurrency("USD", "Dollar américain", "$", decimal.RequireFromString("600"))
		require.NoError(t, err)
		rateRepo.On("FindByPeriod", ctx, "USD", 3, 2026).Return(nil, nil)
		currencyRepo.On("FindByCode", ctx, "USD").Return(currency, nil)

		got, err := svc.RateFor(ctx, "USD", march)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("600")))
	})
}
