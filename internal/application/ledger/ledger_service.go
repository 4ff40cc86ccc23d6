package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// entrySequenceScope names the counter handing out entry numbers
const entrySequenceScope = "entry"

// LedgerService creates, edits and validates accounting entries and
// answers balance queries over them.
type LedgerService struct {
	entryRepo      ledger.EntryRepository
	seqRepo        ledger.SequenceRepository
	accountRepo    accounting.AccountRepository
	journalRepo    accounting.JournalRepository
	fiscalYearRepo accounting.FiscalYearRepository
	trail          *audit.Trail
	tx             shared.TxManager
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	entryRepo ledger.EntryRepository,
	seqRepo ledger.SequenceRepository,
	accountRepo accounting.AccountRepository,
	journalRepo accounting.JournalRepository,
	fiscalYearRepo accounting.FiscalYearRepository,
	trail *audit.Trail,
	tx shared.TxManager,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		entryRepo:      entryRepo,
		seqRepo:        seqRepo,
		accountRepo:    accountRepo,
		journalRepo:    journalRepo,
		fiscalYearRepo: fiscalYearRepo,
		trail:          trail,
		tx:             tx,
		logger:         logger,
	}
}

// LineInput is one posting line of an entry request
type LineInput struct {
	AccountID    uuid.UUID       `json:"account_id" binding:"required"`
	Label        string          `json:"label"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ProjectID    *uuid.UUID      `json:"project_id"`
	BudgetLineID *uuid.UUID      `json:"budget_line_id"`
}

// CreateEntryRequest represents a request to create an entry
type CreateEntryRequest struct {
	JournalID    uuid.UUID        `json:"journal_id" binding:"required"`
	FiscalYearID *uuid.UUID       `json:"fiscal_year_id"`
	Date         time.Time        `json:"date" binding:"required"`
	Label        string           `json:"label" binding:"required"`
	Reference    string           `json:"reference"`
	CurrencyCode string           `json:"currency_code"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`
	Lines        []LineInput      `json:"lines" binding:"required,min=2,dive"`
	Actor        string           `json:"-"`
}

// UpdateEntryRequest represents a request to edit an entry. The full
// line set is replaced.
type UpdateEntryRequest struct {
	Date         time.Time   `json:"date" binding:"required"`
	Label        string      `json:"label" binding:"required"`
	Reference    string      `json:"reference"`
	FiscalYearID *uuid.UUID  `json:"fiscal_year_id"`
	Lines        []LineInput `json:"lines" binding:"required,min=2,dive"`
	Actor        string      `json:"-"`
}

// LineResponse represents a line in API responses
type LineResponse struct {
	ID           uuid.UUID            `json:"id"`
	AccountID    uuid.UUID            `json:"account_id"`
	Label        string               `json:"label"`
	Debit        decimal.Decimal      `json:"debit"`
	Credit       decimal.Decimal      `json:"credit"`
	ProjectID    *uuid.UUID           `json:"project_id,omitempty"`
	BudgetLineID *uuid.UUID           `json:"budget_line_id,omitempty"`
	Allocations  []AllocationResponse `json:"allocations,omitempty"`
}

// AllocationResponse represents an analytical allocation in API responses
type AllocationResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProjectID    uuid.UUID       `json:"project_id"`
	BudgetLineID *uuid.UUID      `json:"budget_line_id,omitempty"`
	Percentage   decimal.Decimal `json:"percentage"`
	Amount       decimal.Decimal `json:"amount"`
}

// EntryResponse represents an entry in API responses
type EntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	Date         time.Time       `json:"date"`
	JournalID    uuid.UUID       `json:"journal_id"`
	FiscalYearID uuid.UUID       `json:"fiscal_year_id"`
	Label        string          `json:"label"`
	Reference    string          `json:"reference,omitempty"`
	CurrencyCode string          `json:"currency_code"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Validated    bool            `json:"validated"`
	ValidatedAt  *time.Time      `json:"validated_at,omitempty"`
	ValidatedBy  string          `json:"validated_by,omitempty"`
	TotalDebit   decimal.Decimal `json:"total_debit"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	Balanced     bool            `json:"balanced"`
	Lines        []LineResponse  `json:"lines"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateEntry creates a balanced entry with a generated number. Entry,
// lines and the audit record are persisted in one transaction.
func (s *LedgerService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*EntryResponse, error) {
	fy, err := s.resolveFiscalYear(ctx, req.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.Closed {
		return nil, shared.NewDomainError("FISCAL_YEAR_CLOSED", fmt.Sprintf("Fiscal year %d is closed", fy.Year))
	}
	if !fy.Contains(req.Date) {
		return nil, shared.NewDomainError("DATE_OUT_OF_RANGE",
			fmt.Sprintf("Entry date must fall within fiscal year %d", fy.Year))
	}
	if _, err := s.journalRepo.FindByID(ctx, req.JournalID); err != nil {
		return nil, err
	}

	lines, err := buildLines(req.Lines)
	if err != nil {
		return nil, err
	}

	rate := decimal.NewFromInt(1)
	if req.ExchangeRate != nil {
		rate = *req.ExchangeRate
	}

	var entry *ledger.Entry
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		seq, err := s.seqRepo.Next(ctx, entrySequenceScope, fy.Year)
		if err != nil {
			return err
		}
		entry, err = ledger.NewEntry(
			ledger.FormatEntryNumber(fy.Year, seq),
			req.JournalID, fy.ID, req.Date, req.Label, req.Reference,
			valueobject.Currency(req.CurrencyCode), rate, req.Actor, lines,
		)
		if err != nil {
			return err
		}
		if err := s.entryRepo.Save(ctx, entry); err != nil {
			return err
		}
		return s.trail.Write(ctx, "entries", entry.ID, audit.ActionCreate, nil, entry, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// EditEntry replaces the header and the full line set of an entry.
// Validated entries and entries of a closed year are frozen; moving an
// entry into a closed year is rejected.
func (s *LedgerService) EditEntry(ctx context.Context, id uuid.UUID, req UpdateEntryRequest) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Validated {
		return nil, shared.NewDomainError("ENTRY_VALIDATED", "Validated entries cannot be modified")
	}
	fy, err := s.fiscalYearRepo.FindByID(ctx, entry.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.Closed {
		return nil, shared.NewDomainError("FISCAL_YEAR_CLOSED", fmt.Sprintf("Fiscal year %d is closed", fy.Year))
	}

	if req.FiscalYearID != nil && *req.FiscalYearID != entry.FiscalYearID {
		fy, err = s.fiscalYearRepo.FindByID(ctx, *req.FiscalYearID)
		if err != nil {
			return nil, err
		}
		if fy.Closed {
			return nil, shared.NewDomainError("FISCAL_YEAR_CLOSED", "Entries cannot move into a closed fiscal year")
		}
	}
	// The date check applies whether the entry moves or stays.
	if !fy.Contains(req.Date) {
		return nil, shared.NewDomainError("DATE_OUT_OF_RANGE",
			fmt.Sprintf("Entry date must fall within fiscal year %d", fy.Year))
	}
	target := fy.ID

	lines, err := buildLines(req.Lines)
	if err != nil {
		return nil, err
	}

	before := *entry
	if err := entry.UpdateHeader(req.Date, req.Label, req.Reference); err != nil {
		return nil, err
	}
	if target != entry.FiscalYearID {
		if err := entry.MoveToFiscalYear(target); err != nil {
			return nil, err
		}
	}
	if err := entry.ReplaceLines(lines); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.Save(ctx, entry); err != nil {
			return err
		}
		return s.trail.Write(ctx, "entries", entry.ID, audit.ActionUpdate, &before, entry, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// DeleteEntry removes a draft entry, cascading to lines and
// allocations. Validated entries and closed years are protected.
func (s *LedgerService) DeleteEntry(ctx context.Context, id uuid.UUID, actor string) error {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.Validated {
		return shared.NewDomainError("ENTRY_VALIDATED", "Validated entries cannot be deleted")
	}
	if err := s.ensureYearOpen(ctx, entry.FiscalYearID); err != nil {
		return err
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.trail.Write(ctx, "entries", id, audit.ActionDelete, entry, nil, actor)
	})
}

// ValidateEntry marks an entry as validated
func (s *LedgerService) ValidateEntry(ctx context.Context, id uuid.UUID, actor string) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureYearOpen(ctx, entry.FiscalYearID); err != nil {
		return nil, err
	}
	before := *entry
	if err := entry.Validate(actor); err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.Save(ctx, entry); err != nil {
			return err
		}
		return s.trail.Write(ctx, "entries", entry.ID, audit.ActionValidate, &before, entry, actor)
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// InvalidateEntry reverts a validated entry to draft
func (s *LedgerService) InvalidateEntry(ctx context.Context, id uuid.UUID, actor string) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureYearOpen(ctx, entry.FiscalYearID); err != nil {
		return nil, err
	}
	before := *entry
	if err := entry.Invalidate(); err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.Save(ctx, entry); err != nil {
			return err
		}
		return s.trail.Write(ctx, "entries", entry.ID, audit.ActionUpdate, &before, entry, actor)
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// BulkValidateResponse reports how many entries a bulk validation touched
type BulkValidateResponse struct {
	Validated int `json:"validated"`
	Skipped   int `json:"skipped"`
}

// BulkValidate validates every listed entry that is unvalidated,
// balanced and in an open year; the rest are silently skipped.
func (s *LedgerService) BulkValidate(ctx context.Context, ids []uuid.UUID, actor string) (*BulkValidateResponse, error) {
	entries, err := s.entryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	validated := 0
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		for i := range entries {
			entry := &entries[i]
			if !entry.CanValidate() {
				continue
			}
			fy, err := s.fiscalYearRepo.FindByID(ctx, entry.FiscalYearID)
			if err != nil {
				return err
			}
			if fy.Closed {
				continue
			}
			before := *entry
			if err := entry.Validate(actor); err != nil {
				continue
			}
			if err := s.entryRepo.Save(ctx, entry); err != nil {
				return err
			}
			if err := s.trail.Write(ctx, "entries", entry.ID, audit.ActionValidate, &before, entry, actor); err != nil {
				return err
			}
			validated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BulkValidateResponse{Validated: validated, Skipped: len(entries) - validated}, nil
}

// DuplicateEntry copies an entry with its lines and allocations into a
// new draft dated today, numbered in the currently open fiscal year.
// When today falls outside that year the copy is dated on its last day,
// keeping the date inside the year's range.
func (s *LedgerService) DuplicateEntry(ctx context.Context, id uuid.UUID, actor string) (*EntryResponse, error) {
	source, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fy, err := s.resolveFiscalYear(ctx, nil)
	if err != nil {
		return nil, err
	}
	date := time.Now()
	if !fy.Contains(date) {
		date = fy.EndDate
	}

	var duplicate *ledger.Entry
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		seq, err := s.seqRepo.Next(ctx, entrySequenceScope, fy.Year)
		if err != nil {
			return err
		}
		duplicate, err = ledger.NewEntry(
			ledger.FormatEntryNumber(fy.Year, seq),
			source.JournalID, fy.ID, date,
			source.Label, source.Reference,
			source.CurrencyCode, source.ExchangeRate, actor,
			source.CopyLines(),
		)
		if err != nil {
			return err
		}
		if err := s.entryRepo.Save(ctx, duplicate); err != nil {
			return err
		}
		return s.trail.Write(ctx, "entries", duplicate.ID, audit.ActionCreate, nil, duplicate, actor)
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(duplicate), nil
}

// GetEntry returns one entry with its lines
func (s *LedgerService) GetEntry(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// ListEntries returns entries matching the filter
func (s *LedgerService) ListEntries(ctx context.Context, filter ledger.EntryFilter) (*shared.Paginated[EntryResponse], error) {
	entries, err := s.entryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.entryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = *toEntryResponse(&entries[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// AccountBalanceRequest scopes a balance query
type AccountBalanceRequest struct {
	AccountID          uuid.UUID  `json:"account_id" binding:"required"`
	FiscalYearID       *uuid.UUID `json:"fiscal_year_id"`
	IncludeUnvalidated bool       `json:"include_unvalidated"`
}

// AccountBalanceResponse is the debit/credit rollup of one account
type AccountBalanceResponse struct {
	AccountID   uuid.UUID       `json:"account_id"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountBalance computes sum(debit) - sum(credit) over matching lines
func (s *LedgerService) AccountBalance(ctx context.Context, req AccountBalanceRequest) (*AccountBalanceResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, req.AccountID); err != nil {
		return nil, err
	}
	q := ledger.BalanceQuery{
		AccountID:          req.AccountID,
		FiscalYearID:       req.FiscalYearID,
		IncludeUnvalidated: req.IncludeUnvalidated,
	}
	debit, err := s.entryRepo.SumDebit(ctx, q)
	if err != nil {
		return nil, err
	}
	credit, err := s.entryRepo.SumCredit(ctx, q)
	if err != nil {
		return nil, err
	}
	return &AccountBalanceResponse{
		AccountID:   req.AccountID,
		TotalDebit:  debit,
		TotalCredit: credit,
		Balance:     debit.Sub(credit),
	}, nil
}

// BudgetLineRealized sums class-6 debits tagged with the budget line.
// Credits to expense accounts never reduce realized spend.
func (s *LedgerService) BudgetLineRealized(ctx context.Context, budgetLineID uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	return s.entryRepo.SumExpenseDebitByBudgetLine(ctx, budgetLineID, from, to)
}

// resolveFiscalYear loads the requested year or falls back to the
// currently open one.
func (s *LedgerService) resolveFiscalYear(ctx context.Context, id *uuid.UUID) (*accounting.FiscalYear, error) {
	if id != nil {
		return s.fiscalYearRepo.FindByID(ctx, *id)
	}
	fy, err := s.fiscalYearRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	if fy == nil {
		return nil, shared.NewDomainError("NO_OPEN_FISCAL_YEAR", "No fiscal year is currently open")
	}
	return fy, nil
}

// ensureYearOpen fails with FISCAL_YEAR_CLOSED when the entry's year is closed
func (s *LedgerService) ensureYearOpen(ctx context.Context, fiscalYearID uuid.UUID) error {
	fy, err := s.fiscalYearRepo.FindByID(ctx, fiscalYearID)
	if err != nil {
		return err
	}
	if fy.Closed {
		return shared.NewDomainError("FISCAL_YEAR_CLOSED", fmt.Sprintf("Fiscal year %d is closed", fy.Year))
	}
	return nil
}

func buildLines(inputs []LineInput) ([]ledger.Line, error) {
	lines := make([]ledger.Line, 0, len(inputs))
	for _, input := range inputs {
		line, err := ledger.NewLine(input.AccountID, input.Label, input.Debit, input.Credit)
		if err != nil {
			return nil, err
		}
		if input.ProjectID != nil {
			line = line.WithProject(*input.ProjectID, input.BudgetLineID)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func toEntryResponse(entry *ledger.Entry) *EntryResponse {
	lines := make([]LineResponse, len(entry.Lines))
	for i, line := range entry.Lines {
		allocations := make([]AllocationResponse, len(line.Allocations))
		for j, alloc := range line.Allocations {
			allocations[j] = AllocationResponse{
				ID:           alloc.ID,
				ProjectID:    alloc.ProjectID,
				BudgetLineID: alloc.BudgetLineID,
				Percentage:   alloc.Percentage,
				Amount:       alloc.Amount,
			}
		}
		lines[i] = LineResponse{
			ID:           line.ID,
			AccountID:    line.AccountID,
			Label:        line.Label,
			Debit:        line.Debit,
			Credit:       line.Credit,
			ProjectID:    line.ProjectID,
			BudgetLineID: line.BudgetLineID,
			Allocations:  allocations,
		}
	}
	return &EntryResponse{
		ID:           entry.ID,
		Number:       entry.Number,
		Date:         entry.Date,
		JournalID:    entry.JournalID,
		FiscalYearID: entry.FiscalYearID,
		Label:        entry.Label,
		Reference:    entry.Reference,
		CurrencyCode: string(entry.CurrencyCode),
		ExchangeRate: entry.ExchangeRate,
		Validated:    entry.Validated,
		ValidatedAt:  entry.ValidatedAt,
		ValidatedBy:  entry.ValidatedBy,
		TotalDebit:   entry.TotalDebit(),
		TotalCredit:  entry.TotalCredit(),
		Balanced:     entry.IsBalanced(),
		Lines:        lines,
		CreatedAt:    entry.CreatedAt,
	}
}
