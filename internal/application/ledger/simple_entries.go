package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SimpleEntryKind names a guided two-line entry form
type SimpleEntryKind string

const (
	SimpleExpense  SimpleEntryKind = "expense"
	SimpleIncome   SimpleEntryKind = "income"
	SimpleTransfer SimpleEntryKind = "transfer"
	SimpleAdvance  SimpleEntryKind = "advance"
)

// IsValid checks if the simple entry kind is valid
func (k SimpleEntryKind) IsValid() bool {
	switch k {
	case SimpleExpense, SimpleIncome, SimpleTransfer, SimpleAdvance:
		return true
	}
	return false
}

// SimpleEntryRequest represents a guided entry form: one amount, one
// counterpart account and one treasury account, posted on the right
// sides for the kind.
type SimpleEntryRequest struct {
	Kind              SimpleEntryKind `json:"kind" binding:"required"`
	JournalID         uuid.UUID       `json:"journal_id" binding:"required"`
	Date              time.Time       `json:"date" binding:"required"`
	Label             string          `json:"label" binding:"required"`
	Reference         string          `json:"reference"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	AccountID         uuid.UUID       `json:"account_id"`
	TreasuryAccountID uuid.UUID       `json:"treasury_account_id" binding:"required"`
	CounterTreasuryID *uuid.UUID      `json:"counter_treasury_id"`
	ProjectID         *uuid.UUID      `json:"project_id"`
	BudgetLineID      *uuid.UUID      `json:"budget_line_id"`
	Actor             string          `json:"-"`
}

// PayrollEntryRequest represents a monthly payroll posting: gross
// salary and employer charges as expenses, social contributions payable
// and the net paid out of treasury.
type PayrollEntryRequest struct {
	JournalID         uuid.UUID       `json:"journal_id" binding:"required"`
	Date              time.Time       `json:"date" binding:"required"`
	Label             string          `json:"label" binding:"required"`
	Reference         string          `json:"reference"`
	GrossAmount       decimal.Decimal `json:"gross_amount" binding:"required"`
	EmployerCharges   decimal.Decimal `json:"employer_charges"`
	NetAmount         decimal.Decimal `json:"net_amount" binding:"required"`
	TreasuryAccountID uuid.UUID       `json:"treasury_account_id" binding:"required"`
	ProjectID         *uuid.UUID      `json:"project_id"`
	BudgetLineID      *uuid.UUID      `json:"budget_line_id"`
	Actor             string          `json:"-"`
}

// CreateSimpleEntry builds a balanced two-line entry from a guided
// form. The treasury account must be a class-5 account; the kind
// decides which side each account is posted on.
func (s *LedgerService) CreateSimpleEntry(ctx context.Context, req SimpleEntryRequest) (*EntryResponse, error) {
	if !req.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown simple entry kind")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	treasury, err := s.requireTreasuryAccount(ctx, req.TreasuryAccountID)
	if err != nil {
		return nil, err
	}

	var debitID, creditID uuid.UUID
	switch req.Kind {
	case SimpleExpense, SimpleAdvance:
		if req.AccountID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT", "Counterpart account is required")
		}
		debitID, creditID = req.AccountID, treasury.ID
	case SimpleIncome:
		if req.AccountID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT", "Counterpart account is required")
		}
		debitID, creditID = treasury.ID, req.AccountID
	case SimpleTransfer:
		if req.CounterTreasuryID == nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT", "Destination treasury account is required")
		}
		dest, err := s.requireTreasuryAccount(ctx, *req.CounterTreasuryID)
		if err != nil {
			return nil, err
		}
		debitID, creditID = dest.ID, treasury.ID
	}

	debit := LineInput{AccountID: debitID, Debit: req.Amount}
	if req.Kind == SimpleExpense {
		// analytic tags follow the expense side only
		debit.ProjectID = req.ProjectID
		debit.BudgetLineID = req.BudgetLineID
	}
	credit := LineInput{AccountID: creditID, Credit: req.Amount}

	return s.CreateEntry(ctx, CreateEntryRequest{
		JournalID: req.JournalID,
		Date:      req.Date,
		Label:     req.Label,
		Reference: req.Reference,
		Lines:     []LineInput{debit, credit},
		Actor:     req.Actor,
	})
}

// CreatePayrollEntry posts a payroll month in one balanced entry:
// debit gross salaries (661) and employer charges (664), credit social
// contributions payable (43) and the treasury account for the net.
func (s *LedgerService) CreatePayrollEntry(ctx context.Context, req PayrollEntryRequest) (*EntryResponse, error) {
	if req.GrossAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Gross amount must be positive")
	}
	if req.NetAmount.LessThanOrEqual(decimal.Zero) || req.NetAmount.GreaterThan(req.GrossAmount) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Net amount must be positive and at most the gross")
	}
	if req.EmployerCharges.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Employer charges cannot be negative")
	}
	if _, err := s.requireTreasuryAccount(ctx, req.TreasuryAccountID); err != nil {
		return nil, err
	}

	salaryAccount, err := s.findAccountByPrefix(ctx, "661")
	if err != nil {
		return nil, err
	}
	socialAccount, err := s.findAccountByPrefix(ctx, "43")
	if err != nil {
		return nil, err
	}

	social := req.GrossAmount.Add(req.EmployerCharges).Sub(req.NetAmount)

	lines := []LineInput{
		{AccountID: salaryAccount.ID, Label: "Salaires bruts", Debit: req.GrossAmount,
			ProjectID: req.ProjectID, BudgetLineID: req.BudgetLineID},
	}
	if req.EmployerCharges.IsPositive() {
		chargesAccount, err := s.findAccountByPrefix(ctx, "664")
		if err != nil {
			return nil, err
		}
		lines = append(lines, LineInput{
			AccountID: chargesAccount.ID, Label: "Charges patronales", Debit: req.EmployerCharges,
			ProjectID: req.ProjectID, BudgetLineID: req.BudgetLineID,
		})
	}
	if social.IsPositive() {
		lines = append(lines, LineInput{
			AccountID: socialAccount.ID, Label: "Cotisations sociales", Credit: social,
		})
	}
	lines = append(lines, LineInput{
		AccountID: req.TreasuryAccountID, Label: "Salaires nets payés", Credit: req.NetAmount,
	})

	return s.CreateEntry(ctx, CreateEntryRequest{
		JournalID: req.JournalID,
		Date:      req.Date,
		Label:     req.Label,
		Reference: req.Reference,
		Lines:     lines,
		Actor:     req.Actor,
	})
}

func (s *LedgerService) requireTreasuryAccount(ctx context.Context, id uuid.UUID) (*accounting.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.IsTreasury() {
		return nil, shared.NewDomainError("NOT_TREASURY",
			fmt.Sprintf("Account %s is not a treasury account", account.Number))
	}
	return account, nil
}

// findAccountByPrefix picks the first active account under a SYSCOHADA
// prefix, ordered by number.
func (s *LedgerService) findAccountByPrefix(ctx context.Context, prefix string) (*accounting.Account, error) {
	active := true
	filter := accounting.AccountFilter{
		Filter:       shared.Filter{Page: 1, PageSize: 1, OrderBy: "number", OrderDir: "asc"},
		NumberPrefix: prefix,
		Active:       &active,
	}
	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, shared.NewDomainError("ACCOUNT_MISSING",
			fmt.Sprintf("No active account under prefix %s in the chart", prefix))
	}
	return &accounts[0], nil
}
