package budget

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "actif"
	ProjectClosed    ProjectStatus = "cloture"
	ProjectSuspended ProjectStatus = "suspendu"
)

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectActive, ProjectClosed, ProjectSuspended:
		return true
	}
	return false
}

// BudgetCategory groups budget lines in reports
type BudgetCategory struct {
	shared.BaseEntity
	Code  string
	Name  string
	Order int
}

// NewBudgetCategory creates a reporting category for budget lines
func NewBudgetCategory(code, name string, order int) (*BudgetCategory, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Category code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Category name is required")
	}
	return &BudgetCategory{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Order:      order,
	}, nil
}

// BudgetYear is the planned amount of a budget line for one year.
// When present, the per-year amounts override the line total under a
// year filter. At most one exists per (line, year).
type BudgetYear struct {
	ID            uuid.UUID
	BudgetLineID  uuid.UUID
	Year          int
	PlannedAmount decimal.Decimal
}

// BudgetLine is one planned spending line of a project budget.
// PlannedAmount is denormalized as quantity times unit cost and
// recomputed at creation.
type BudgetLine struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	CategoryID    *uuid.UUID
	Code          string
	Label         string
	Year          *int
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	PlannedAmount decimal.Decimal
	Position      int
	Years         []BudgetYear
}

// NewBudgetLine creates a budget line; planned amount is derived
func NewBudgetLine(code, label string, quantity, unitCost decimal.Decimal, categoryID *uuid.UUID, year *int) (BudgetLine, error) {
	if strings.TrimSpace(code) == "" {
		return BudgetLine{}, shared.NewDomainError("INVALID_CODE", "Budget line code is required")
	}
	if strings.TrimSpace(label) == "" {
		return BudgetLine{}, shared.NewDomainError("INVALID_LABEL", "Budget line label is required")
	}
	if quantity.IsNegative() || unitCost.IsNegative() {
		return BudgetLine{}, shared.NewDomainError("INVALID_AMOUNT", "Quantity and unit cost must not be negative")
	}
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}
	return BudgetLine{
		ID:            uuid.New(),
		CategoryID:    categoryID,
		Code:          code,
		Label:         label,
		Year:          year,
		Quantity:      quantity,
		UnitCost:      unitCost,
		PlannedAmount: quantity.Mul(unitCost),
	}, nil
}

// PlannedFor returns the planned amount under an optional year filter.
// The per-year breakdown overrides the line total when it exists.
func (b BudgetLine) PlannedFor(year *int) decimal.Decimal {
	if year == nil {
		return b.PlannedAmount
	}
	for _, by := range b.Years {
		if by.Year == *year {
			return by.PlannedAmount
		}
	}
	if len(b.Years) > 0 {
		return decimal.Zero
	}
	return b.PlannedAmount
}

// SetYearAmount sets the planned amount for one year of the breakdown
func (b *BudgetLine) SetYearAmount(year int, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Planned amount must not be negative")
	}
	for i, by := range b.Years {
		if by.Year == year {
			b.Years[i].PlannedAmount = amount
			return nil
		}
	}
	b.Years = append(b.Years, BudgetYear{
		ID:            uuid.New(),
		BudgetLineID:  b.ID,
		Year:          year,
		PlannedAmount: amount,
	})
	return nil
}

// Project is a donor-funded program with its own budget. It owns its
// budget lines (cascade-delete).
type Project struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	DonorID     *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	TotalBudget decimal.Decimal
	Currency    valueobject.Currency
	Status      ProjectStatus
	BudgetLines []BudgetLine
}

// NewProject creates a project with a unique code
func NewProject(code, name string, donorID *uuid.UUID, startDate, endDate *time.Time, totalBudget decimal.Decimal, currency valueobject.Currency) (*Project, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Project code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Project name is required")
	}
	if totalBudget.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total budget must not be negative")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Project end date must not be before start date")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		DonorID:           donorID,
		StartDate:         startDate,
		EndDate:           endDate,
		TotalBudget:       totalBudget,
		Currency:          currency,
		Status:            ProjectActive,
	}, nil
}

// IsActive reports whether the project accepts new spending
func (p *Project) IsActive() bool {
	return p.Status == ProjectActive
}

// AddBudgetLine appends a budget line to the project
func (p *Project) AddBudgetLine(line BudgetLine) {
	line.ProjectID = p.ID
	line.Position = len(p.BudgetLines) + 1
	p.BudgetLines = append(p.BudgetLines, line)
}

// Suspend pauses the project
func (p *Project) Suspend() error {
	if p.Status != ProjectActive {
		return shared.NewDomainError("INVALID_STATE", "Only active projects can be suspended")
	}
	p.Status = ProjectSuspended
	return nil
}

// Resume reactivates a suspended project
func (p *Project) Resume() error {
	if p.Status != ProjectSuspended {
		return shared.NewDomainError("INVALID_STATE", "Only suspended projects can be resumed")
	}
	p.Status = ProjectActive
	return nil
}

// Close closes the project permanently
func (p *Project) Close() error {
	if p.Status == ProjectClosed {
		return shared.NewDomainError("INVALID_STATE", "Project is already closed")
	}
	p.Status = ProjectClosed
	return nil
}
