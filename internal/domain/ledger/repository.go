package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryFilter defines filtering options for entry queries
type EntryFilter struct {
	shared.Filter
	JournalID    *uuid.UUID
	FiscalYearID *uuid.UUID
	Validated    *bool
	FromDate     *time.Time
	ToDate       *time.Time
	AccountID    *uuid.UUID
	ProjectID    *uuid.UUID
}

// BalanceQuery scopes a debit/credit sum over lines
type BalanceQuery struct {
	AccountID          uuid.UUID
	FiscalYearID       *uuid.UUID
	IncludeUnvalidated bool
}

// AccountTotal is one row of an account-level debit/credit rollup
type AccountTotal struct {
	AccountID     uuid.UUID
	AccountNumber string
	AccountLabel  string
	Class         int
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
}

// ProjectExpenseTotal is the analytic class-6 debit total of one project
type ProjectExpenseTotal struct {
	ProjectID  uuid.UUID
	TotalDebit decimal.Decimal
}

// EntryRepository defines the interface for entry persistence. Lines
// and their allocations are owned child collections: Save persists the
// whole aggregate and Delete cascades to lines and allocations.
type EntryRepository interface {
	// FindByID finds an entry with its lines and allocations
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindByNumber finds an entry by its unique number
	FindByNumber(ctx context.Context, number string) (*Entry, error)

	// FindAll finds entries matching the filter
	FindAll(ctx context.Context, filter EntryFilter) ([]Entry, error)

	// FindByIDs loads several entries with their lines
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Entry, error)

	// FindUnvalidatedBefore finds unvalidated entries created before the cutoff
	FindUnvalidatedBefore(ctx context.Context, cutoff time.Time) ([]Entry, error)

	// Save creates or updates an entry together with all its lines
	Save(ctx context.Context, entry *Entry) error

	// Delete removes an entry, cascading to lines and allocations
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts entries matching the filter
	Count(ctx context.Context, filter EntryFilter) (int64, error)

	// CountUnvalidatedByFiscalYear counts draft entries of one fiscal year
	CountUnvalidatedByFiscalYear(ctx context.Context, fiscalYearID uuid.UUID) (int64, error)

	// CountByJournal counts entries referencing a journal
	CountByJournal(ctx context.Context, journalID uuid.UUID) (int64, error)

	// SumDebit sums line debits for the balance query scope
	SumDebit(ctx context.Context, q BalanceQuery) (decimal.Decimal, error)

	// SumCredit sums line credits for the balance query scope
	SumCredit(ctx context.Context, q BalanceQuery) (decimal.Decimal, error)

	// SumExpenseDebitByBudgetLine sums debits on class-6 accounts for
	// lines tagged with the budget line. Credits never reduce the total.
	SumExpenseDebitByBudgetLine(ctx context.Context, budgetLineID uuid.UUID, from, to *time.Time) (decimal.Decimal, error)

	// SumExpenseDebitByProject sums class-6 debits per project over a
	// fiscal year, counting direct line tags
	SumExpenseDebitByProject(ctx context.Context, fiscalYearID uuid.UUID) ([]ProjectExpenseTotal, error)

	// AccountTotals aggregates debit and credit per account over a
	// fiscal year. Draft entries are excluded unless includeUnvalidated.
	AccountTotals(ctx context.Context, fiscalYearID uuid.UUID, includeUnvalidated bool) ([]AccountTotal, error)

	// SumClassTotal sums one side of all lines hitting accounts of the
	// class over a fiscal year
	SumClassTotal(ctx context.Context, fiscalYearID uuid.UUID, class int, side Side, includeUnvalidated bool) (decimal.Decimal, error)

	// FindLineByID finds a single line with its allocations
	FindLineByID(ctx context.Context, lineID uuid.UUID) (*Line, error)

	// ReplaceAllocations swaps the allocation set of a line
	ReplaceAllocations(ctx context.Context, lineID uuid.UUID, allocations []AnalyticalAllocation) error
}

// Side selects the debit or credit side of a sum
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// SequenceRepository hands out gap-free numbers from named counters.
// Next must be called inside the transaction that persists the
// numbered record, so concurrent writers cannot obtain the same value.
type SequenceRepository interface {
	Next(ctx context.Context, scope string, year int) (int, error)
}

// DocumentRepository defines the interface for supporting-document metadata
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupportingDocument, error)
	FindByEntry(ctx context.Context, entryID uuid.UUID) ([]SupportingDocument, error)
	Save(ctx context.Context, doc *SupportingDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
}
