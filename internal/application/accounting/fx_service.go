package accounting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FxService manages currencies and their monthly exchange rates
type FxService struct {
	currencyRepo accounting.CurrencyRepository
	rateRepo     accounting.ExchangeRateRepository
	trail        *audit.Trail
	tx           shared.TxManager
}

// NewFxService creates a new FxService
func NewFxService(
	currencyRepo accounting.CurrencyRepository,
	rateRepo accounting.ExchangeRateRepository,
	trail *audit.Trail,
	tx shared.TxManager,
) *FxService {
	return &FxService{
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		trail:        trail,
		tx:           tx,
	}
}

// CurrencyResponse represents a currency in API responses
type CurrencyResponse struct {
	ID       uuid.UUID       `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol,omitempty"`
	BaseRate decimal.Decimal `json:"base_rate"`
	Active   bool            `json:"active"`
}

// ExchangeRateResponse represents a monthly rate in API responses
type ExchangeRateResponse struct {
	ID           uuid.UUID       `json:"id"`
	CurrencyCode string          `json:"currency_code"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source"`
}

// CreateCurrencyRequest represents a request to register a currency
type CreateCurrencyRequest struct {
	Code     string          `json:"code" binding:"required,len=3"`
	Name     string          `json:"name" binding:"required"`
	Symbol   string          `json:"symbol"`
	BaseRate decimal.Decimal `json:"base_rate" binding:"required"`
	Actor    string          `json:"-"`
}

// UpsertRateRequest represents a request to set a monthly rate
type UpsertRateRequest struct {
	CurrencyCode string          `json:"currency_code" binding:"required,len=3"`
	Month        int             `json:"month" binding:"required,min=1,max=12"`
	Year         int             `json:"year" binding:"required"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	Source       string          `json:"source"`
	Actor        string          `json:"-"`
}

// CreateCurrency registers a currency. The code is normalized before the
// duplicate check so "eur" and "EUR" hit the same slot.
func (s *FxService) CreateCurrency(ctx context.Context, req CreateCurrencyRequest) (*CurrencyResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	existing, err := s.currencyRepo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Currency is already registered")
	}

	currency, err := accounting.NewCurrency(code, req.Name, req.Symbol, req.BaseRate)
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.currencyRepo.Save(ctx, currency); err != nil {
			return err
		}
		return s.trail.Write(ctx, "currencies", currency.ID, audit.ActionCreate, nil, currency, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toCurrencyResponse(currency), nil
}

// ListCurrencies returns all registered currencies
func (s *FxService) ListCurrencies(ctx context.Context) ([]CurrencyResponse, error) {
	currencies, err := s.currencyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = *toCurrencyResponse(&currencies[i])
	}
	return responses, nil
}

// UpsertMonthlyRate sets the rate for (currency, month, year). Entering
// the same period twice replaces the stored rate.
func (s *FxService) UpsertMonthlyRate(ctx context.Context, req UpsertRateRequest) (*ExchangeRateResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	existing, err := s.rateRepo.FindByPeriod(ctx, code, req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		before := *existing
		if err := existing.Update(req.Rate, req.Source); err != nil {
			return nil, err
		}
		err = s.tx.InTx(ctx, func(ctx context.Context) error {
			if err := s.rateRepo.Save(ctx, existing); err != nil {
				return err
			}
			return s.trail.Write(ctx, "exchange_rates", existing.ID, audit.ActionUpdate, &before, existing, req.Actor)
		})
		if err != nil {
			return nil, err
		}
		return toRateResponse(existing), nil
	}

	rate, err := accounting.NewExchangeRate(code, req.Month, req.Year, req.Rate, req.Source)
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.rateRepo.Save(ctx, rate); err != nil {
			return err
		}
		return s.trail.Write(ctx, "exchange_rates", rate.ID, audit.ActionCreate, nil, rate, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toRateResponse(rate), nil
}

// ListRates returns the monthly rates of one currency
func (s *FxService) ListRates(ctx context.Context, currencyCode string) ([]ExchangeRateResponse, error) {
	rates, err := s.rateRepo.FindByCurrency(ctx, currencyCode)
	if err != nil {
		return nil, err
	}
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = *toRateResponse(&rates[i])
	}
	return responses, nil
}

// RateFor returns the rate applying to a date, falling back to the
// currency's base rate when no monthly rate was entered.
func (s *FxService) RateFor(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error) {
	rate, err := s.rateRepo.FindByPeriod(ctx, currencyCode, int(date.Month()), date.Year())
	if err != nil {
		return decimal.Zero, err
	}
	if rate != nil {
		return rate.Rate, nil
	}
	currency, err := s.currencyRepo.FindByCode(ctx, currencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	return currency.BaseRate, nil
}

func toCurrencyResponse(c *accounting.Currency) *CurrencyResponse {
	return &CurrencyResponse{
		ID:       c.ID,
		Code:     c.Code,
		Name:     c.Name,
		Symbol:   c.Symbol,
		BaseRate: c.BaseRate,
		Active:   c.Active,
	}
}

func toRateResponse(r *accounting.ExchangeRate) *ExchangeRateResponse {
	return &ExchangeRateResponse{
		ID:           r.ID,
		CurrencyCode: r.CurrencyCode,
		Month:        r.Month,
		Year:         r.Year,
		Rate:         r.Rate,
		Source:       r.Source,
	}
}
