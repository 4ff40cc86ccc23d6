package ledger

import (
	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Line is one debit/credit posting of an entry. A line normally carries
// either a debit or a credit; both being nonzero is tolerated (SYSCOHADA
// convention is not enforced here, the permissive source behavior is kept).
type Line struct {
	ID           uuid.UUID
	EntryID      uuid.UUID
	AccountID    uuid.UUID
	ProjectID    *uuid.UUID
	BudgetLineID *uuid.UUID
	Label        string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Position     int
	Allocations  []AnalyticalAllocation
}

// NewLine creates a posting line. Amounts must be non-negative; the
// label falls back to the parent entry's label when empty.
func NewLine(accountID uuid.UUID, label string, debit, credit decimal.Decimal) (Line, error) {
	if accountID == uuid.Nil {
		return Line{}, shared.NewDomainError("INVALID_ACCOUNT", "Line account is required")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return Line{}, shared.NewDomainError("INVALID_AMOUNT", "Line amounts must not be negative")
	}
	if debit.IsZero() && credit.IsZero() {
		return Line{}, shared.NewDomainError("INVALID_AMOUNT", "Line must carry a debit or a credit")
	}
	return Line{
		ID:        uuid.New(),
		AccountID: accountID,
		Label:     label,
		Debit:     debit,
		Credit:    credit,
	}, nil
}

// Amount returns the magnitude of the line, debit or credit
func (l Line) Amount() decimal.Decimal {
	if !l.Debit.IsZero() {
		return l.Debit
	}
	return l.Credit
}

// WithProject tags the line with a project and optional budget line
func (l Line) WithProject(projectID uuid.UUID, budgetLineID *uuid.UUID) Line {
	l.ProjectID = &projectID
	l.BudgetLineID = budgetLineID
	return l
}

// AnalyticalAllocation splits a line's amount across projects by
// percentage. The amount is derived from the percentage at creation.
type AnalyticalAllocation struct {
	ID           uuid.UUID
	LineID       uuid.UUID
	ProjectID    uuid.UUID
	BudgetLineID *uuid.UUID
	Percentage   decimal.Decimal
	Amount       decimal.Decimal
}

// NewAnalyticalAllocation creates an allocation of lineAmount at the
// given percentage. Percentage must lie in (0, 100].
func NewAnalyticalAllocation(lineID, projectID uuid.UUID, budgetLineID *uuid.UUID, percentage, lineAmount decimal.Decimal) (AnalyticalAllocation, error) {
	if projectID == uuid.Nil {
		return AnalyticalAllocation{}, shared.NewDomainError("INVALID_PROJECT", "Allocation project is required")
	}
	if !percentage.IsPositive() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return AnalyticalAllocation{}, shared.NewDomainError("INVALID_PERCENTAGE", "Percentage must be between 0 and 100")
	}
	amount := lineAmount.Mul(percentage).Div(decimal.NewFromInt(100)).Round(2)
	return AnalyticalAllocation{
		ID:           uuid.New(),
		LineID:       lineID,
		ProjectID:    projectID,
		BudgetLineID: budgetLineID,
		Percentage:   percentage,
		Amount:       amount,
	}, nil
}
