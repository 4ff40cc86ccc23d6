package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
)

// passthroughTx runs the function directly, standing in for a real
// transaction in unit tests.
type passthroughTx struct{}

func (passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByNumber(ctx context.Context, number string) (*accounting.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter accounting.AccountFilter) ([]accounting.Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindTreasuryAccounts(ctx context.Context) ([]accounting.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Count(ctx context.Context, filter accounting.AccountFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockJournalRepository is a mock implementation of JournalRepository
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Journal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindByCode(ctx context.Context, code string) (*accounting.Journal, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindAll(ctx context.Context) ([]accounting.Journal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]accounting.Journal), args.Error(1)
}

func (m *MockJournalRepository) Save(ctx context.Context, journal *accounting.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCurrencyRepository is a mock implementation of CurrencyRepository
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Currency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindByCode(ctx context.Context, code string) (*accounting.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindAll(ctx context.Context) ([]accounting.Currency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]accounting.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) Save(ctx context.Context, currency *accounting.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// MockExchangeRateRepository is a mock implementation of ExchangeRateRepository
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.ExchangeRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindByPeriod(ctx context.Context, currencyCode string, month, year int) (*accounting.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindByCurrency(ctx context.Context, currencyCode string) ([]accounting.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).([]accounting.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) Save(ctx context.Context, rate *accounting.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFiscalYearRepository is a mock implementation of FiscalYearRepository
type MockFiscalYearRepository struct {
	mock.Mock
}

func (m *MockFiscalYearRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.FiscalYear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindByYear(ctx context.Context, year int) (*accounting.FiscalYear, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindOpen(ctx context.Context) (*accounting.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindAll(ctx context.Context) ([]accounting.FiscalYear, error) {
	args := m.Called(ctx)
	return args.Get(0).([]accounting.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) Save(ctx context.Context, fiscalYear *accounting.FiscalYear) error {
	args := m.Called(ctx, fiscalYear)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) ExistsByYear(ctx context.Context, year int) (bool, error) {
	args := m.Called(ctx, year)
	return args.Bool(0), args.Error(1)
}

// MockAuditRepository is a mock implementation of the audit Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, record *audit.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) FindAll(ctx context.Context, filter audit.Filter) ([]audit.Record, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]audit.Record), args.Error(1)
}

func (m *MockAuditRepository) FindByRecord(ctx context.Context, table string, recordID uuid.UUID) ([]audit.Record, error) {
	args := m.Called(ctx, table, recordID)
	return args.Get(0).([]audit.Record), args.Error(1)
}

// MockEntryRepository is a mock implementation of the ledger EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByNumber(ctx context.Context, number string) (*ledger.Entry, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.Entry, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindUnvalidatedBefore(ctx context.Context, cutoff time.Time) ([]ledger.Entry, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntryRepository) Count(ctx context.Context, filter ledger.EntryFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) CountUnvalidatedByFiscalYear(ctx context.Context, fiscalYearID uuid.UUID) (int64, error) {
	args := m.Called(ctx, fiscalYearID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) CountByJournal(ctx context.Context, journalID uuid.UUID) (int64, error) {
	args := m.Called(ctx, journalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) SumDebit(ctx context.Context, q ledger.BalanceQuery) (decimal.Decimal, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) SumCredit(ctx context.Context, q ledger.BalanceQuery) (decimal.Decimal, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) SumExpenseDebitByBudgetLine(ctx context.Context, budgetLineID uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetLineID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) SumExpenseDebitByProject(ctx context.Context, fiscalYearID uuid.UUID) ([]ledger.ProjectExpenseTotal, error) {
	args := m.Called(ctx, fiscalYearID)
	return args.Get(0).([]ledger.ProjectExpenseTotal), args.Error(1)
}

func (m *MockEntryRepository) AccountTotals(ctx context.Context, fiscalYearID uuid.UUID, includeUnvalidated bool) ([]ledger.AccountTotal, error) {
	args := m.Called(ctx, fiscalYearID, includeUnvalidated)
	return args.Get(0).([]ledger.AccountTotal), args.Error(1)
}

func (m *MockEntryRepository) SumClassTotal(ctx context.Context, fiscalYearID uuid.UUID, class int, side ledger.Side, includeUnvalidated bool) (decimal.Decimal, error) {
	args := m.Called(ctx, fiscalYearID, class, side, includeUnvalidated)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) FindLineByID(ctx context.Context, lineID uuid.UUID) (*ledger.Line, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Line), args.Error(1)
}

func (m *MockEntryRepository) ReplaceAllocations(ctx context.Context, lineID uuid.UUID, allocations []ledger.AnalyticalAllocation) error {
	args := m.Called(ctx, lineID, allocations)
	return args.Error(0)
}
