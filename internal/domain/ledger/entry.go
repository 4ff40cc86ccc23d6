package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// FormatEntryNumber renders an entry number, e.g. PC202500042
func FormatEntryNumber(year, sequence int) string {
	return fmt.Sprintf("PC%d%05d", year, sequence)
}

// Entry ("pièce") is one atomic accounting transaction made of balanced
// debit/credit lines. An entry is created unvalidated; once validated
// it becomes immutable until invalidated again, and entries of a closed
// fiscal year can never change.
type Entry struct {
	shared.BaseAggregateRoot
	Number       string
	Date         time.Time
	JournalID    uuid.UUID
	FiscalYearID uuid.UUID
	Label        string
	Reference    string
	CurrencyCode valueobject.Currency
	ExchangeRate decimal.Decimal
	Validated    bool
	ValidatedAt  *time.Time
	ValidatedBy  string
	CreatedBy    string
	Lines        []Line
}

// NewEntry creates an unvalidated entry from its lines. The balance
// invariant |sum(debit) - sum(credit)| < 0.01 must hold or the entry is
// rejected.
func NewEntry(number string, journalID, fiscalYearID uuid.UUID, date time.Time, label, reference string, currency valueobject.Currency, exchangeRate decimal.Decimal, createdBy string, lines []Line) (*Entry, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Entry number is required")
	}
	if journalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOURNAL", "Entry journal is required")
	}
	if fiscalYearID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Entry fiscal year is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Entry date is required")
	}
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Entry label is required")
	}
	if len(lines) < 2 {
		return nil, shared.NewDomainError("INVALID_LINES", "Entry needs at least two lines")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if exchangeRate.IsZero() {
		exchangeRate = decimal.NewFromInt(1)
	}
	if !exchangeRate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}

	entry := &Entry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Date:              date,
		JournalID:         journalID,
		FiscalYearID:      fiscalYearID,
		Label:             label,
		Reference:         reference,
		CurrencyCode:      currency,
		ExchangeRate:      exchangeRate,
		Validated:         false,
		CreatedBy:         createdBy,
	}
	entry.adoptLines(lines)
	if !entry.IsBalanced() {
		return nil, shared.NewDomainError("UNBALANCED_ENTRY",
			fmt.Sprintf("Total debits (%s) must equal total credits (%s)", entry.TotalDebit().StringFixed(2), entry.TotalCredit().StringFixed(2)))
	}
	entry.AddDomainEvent(NewEntryCreatedEvent(entry))
	return entry, nil
}

// adoptLines binds lines to the entry, numbering positions and
// defaulting missing labels to the entry label.
func (e *Entry) adoptLines(lines []Line) {
	e.Lines = make([]Line, len(lines))
	for i, line := range lines {
		line.EntryID = e.ID
		line.Position = i + 1
		if line.Label == "" {
			line.Label = e.Label
		}
		e.Lines[i] = line
	}
}

// TotalDebit sums the debit side of all lines
func (e *Entry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines
func (e *Entry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// IsBalanced checks the balance invariant at the cent tolerance
func (e *Entry) IsBalanced() bool {
	diff := e.TotalDebit().Sub(e.TotalCredit()).Abs()
	return diff.LessThan(valueobject.BalanceTolerance)
}

// CanModify reports whether the entry accepts edits. Validated entries
// are frozen; the closed-year guard is enforced by the service, which
// holds the fiscal year.
func (e *Entry) CanModify() bool {
	return !e.Validated
}

// ReplaceLines swaps out the full line set (delete + recreate) and
// re-checks the balance invariant.
func (e *Entry) ReplaceLines(lines []Line) error {
	if e.Validated {
		return shared.NewDomainError("ENTRY_VALIDATED", "Validated entries cannot be modified")
	}
	if len(lines) < 2 {
		return shared.NewDomainError("INVALID_LINES", "Entry needs at least two lines")
	}
	previous := e.Lines
	e.adoptLines(lines)
	if !e.IsBalanced() {
		e.Lines = previous
		return shared.NewDomainError("UNBALANCED_ENTRY",
			fmt.Sprintf("Total debits (%s) must equal total credits (%s)", e.TotalDebit().StringFixed(2), e.TotalCredit().StringFixed(2)))
	}
	return nil
}

// UpdateHeader changes the descriptive fields of an unvalidated entry
func (e *Entry) UpdateHeader(date time.Time, label, reference string) error {
	if e.Validated {
		return shared.NewDomainError("ENTRY_VALIDATED", "Validated entries cannot be modified")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Entry date is required")
	}
	if label == "" {
		return shared.NewDomainError("INVALID_LABEL", "Entry label is required")
	}
	e.Date = date
	e.Label = label
	e.Reference = reference
	return nil
}

// MoveToFiscalYear retargets the entry to another open fiscal year
func (e *Entry) MoveToFiscalYear(fiscalYearID uuid.UUID) error {
	if e.Validated {
		return shared.NewDomainError("ENTRY_VALIDATED", "Validated entries cannot be modified")
	}
	if fiscalYearID == uuid.Nil {
		return shared.NewDomainError("INVALID_FISCAL_YEAR", "Entry fiscal year is required")
	}
	e.FiscalYearID = fiscalYearID
	return nil
}

// CanValidate checks if the entry can be validated
func (e *Entry) CanValidate() bool {
	return !e.Validated && e.IsBalanced()
}

// Validate marks the entry as validated. Unbalanced entries are refused.
func (e *Entry) Validate(actor string) error {
	if e.Validated {
		return shared.NewDomainError("ENTRY_VALIDATED", "Entry is already validated")
	}
	if !e.IsBalanced() {
		return shared.NewDomainError("UNBALANCED_ENTRY", "Unbalanced entries cannot be validated")
	}
	now := time.Now()
	e.Validated = true
	e.ValidatedAt = &now
	e.ValidatedBy = actor
	e.AddDomainEvent(NewEntryValidatedEvent(e))
	return nil
}

// Invalidate reverts a validated entry to draft
func (e *Entry) Invalidate() error {
	if !e.Validated {
		return shared.NewDomainError("INVALID_STATE", "Entry is not validated")
	}
	e.Validated = false
	e.ValidatedAt = nil
	e.ValidatedBy = ""
	e.AddDomainEvent(NewEntryInvalidatedEvent(e))
	return nil
}

// CopyLines returns a deep copy of the lines with fresh identifiers,
// ready to seed a duplicate entry. Allocations are carried over.
func (e *Entry) CopyLines() []Line {
	copied := make([]Line, len(e.Lines))
	for i, line := range e.Lines {
		newLine := line
		newLine.ID = uuid.New()
		newLine.EntryID = uuid.Nil
		newLine.Allocations = make([]AnalyticalAllocation, len(line.Allocations))
		for j, alloc := range line.Allocations {
			newAlloc := alloc
			newAlloc.ID = uuid.New()
			newAlloc.LineID = newLine.ID
			newLine.Allocations[j] = newAlloc
		}
		copied[i] = newLine
	}
	return copied
}
