package accounting

import (
	"strings"

	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultRateSource is recorded on monthly rates entered without an
// explicit source.
const DefaultRateSource = "BCEAO"

// Currency is a currency accepted for entries and donor financings
type Currency struct {
	shared.BaseAggregateRoot
	Code     string
	Name     string
	Symbol   string
	BaseRate decimal.Decimal
	Active   bool
}

// NewCurrency registers a currency with its indicative rate against XOF
func NewCurrency(code, name, symbol string, baseRate decimal.Decimal) (*Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY_CODE", "Currency code must be 3 letters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Currency name is required")
	}
	if !baseRate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}
	return &Currency{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Symbol:            symbol,
		BaseRate:          baseRate,
		Active:            true,
	}, nil
}

// ExchangeRate is the monthly rate of a currency against XOF. At most
// one rate exists per (currency, month, year).
type ExchangeRate struct {
	shared.BaseAggregateRoot
	CurrencyCode string
	Month        int
	Year         int
	Rate         decimal.Decimal
	Source       string
}

// NewExchangeRate records a monthly rate
func NewExchangeRate(currencyCode string, month, year int, rate decimal.Decimal, source string) (*ExchangeRate, error) {
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	if len(currencyCode) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY_CODE", "Currency code must be 3 letters")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if year < 1900 || year > 2200 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year out of range")
	}
	if !rate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}
	if source == "" {
		source = DefaultRateSource
	}
	return &ExchangeRate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CurrencyCode:      currencyCode,
		Month:             month,
		Year:              year,
		Rate:              rate,
		Source:            source,
	}, nil
}

// Update replaces the rate value and source for the same month slot
func (r *ExchangeRate) Update(rate decimal.Decimal, source string) error {
	if !rate.IsPositive() {
		return shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}
	r.Rate = rate
	if source != "" {
		r.Source = source
	}
	return nil
}
