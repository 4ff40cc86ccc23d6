package accounting

import (
	"context"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// AccountFilter defines filtering options for chart-of-accounts queries
type AccountFilter struct {
	shared.Filter
	Class        *AccountClass
	Active       *bool
	NumberPrefix string
	TreasuryOnly bool
}

// AccountRepository defines the interface for chart-of-accounts persistence
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByNumber finds an account by its unique number
	FindByNumber(ctx context.Context, number string) (*Account, error)

	// FindAll finds accounts matching the filter
	FindAll(ctx context.Context, filter AccountFilter) ([]Account, error)

	// FindTreasuryAccounts finds active class-5 accounts with treasury details
	FindTreasuryAccounts(ctx context.Context) ([]Account, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// ExistsByNumber checks if an account number is already taken
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// Count counts accounts matching the filter
	Count(ctx context.Context, filter AccountFilter) (int64, error)
}

// JournalRepository defines the interface for journal persistence
type JournalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Journal, error)
	FindByCode(ctx context.Context, code string) (*Journal, error)
	FindAll(ctx context.Context) ([]Journal, error)
	Save(ctx context.Context, journal *Journal) error
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Delete removes a journal. Implementations must refuse while
	// entries still reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CurrencyRepository defines the interface for currency persistence
type CurrencyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Currency, error)
	FindByCode(ctx context.Context, code string) (*Currency, error)
	FindAll(ctx context.Context) ([]Currency, error)
	Save(ctx context.Context, currency *Currency) error
}

// ExchangeRateRepository defines the interface for monthly rate persistence
type ExchangeRateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExchangeRate, error)

	// FindByPeriod finds the rate for (currency, month, year), nil when absent
	FindByPeriod(ctx context.Context, currencyCode string, month, year int) (*ExchangeRate, error)

	// FindByCurrency lists all monthly rates of one currency
	FindByCurrency(ctx context.Context, currencyCode string) ([]ExchangeRate, error)

	Save(ctx context.Context, rate *ExchangeRate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FiscalYearRepository defines the interface for fiscal year persistence
type FiscalYearRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FiscalYear, error)
	FindByYear(ctx context.Context, year int) (*FiscalYear, error)

	// FindOpen returns the currently open fiscal year, or nil when no
	// year is open. Callers must handle the absent case.
	FindOpen(ctx context.Context) (*FiscalYear, error)

	FindAll(ctx context.Context) ([]FiscalYear, error)
	Save(ctx context.Context, fiscalYear *FiscalYear) error
	ExistsByYear(ctx context.Context, year int) (bool, error)
}
