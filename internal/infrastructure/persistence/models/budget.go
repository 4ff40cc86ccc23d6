package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DonorModel is the persistence model for the Donor aggregate root.
type DonorModel struct {
	AggregateModel
	Code     string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	Country  string `gorm:"type:varchar(100)"`
	Contact  string `gorm:"type:varchar(200)"`
	Email    string `gorm:"type:varchar(200)"`
	Currency string `gorm:"type:varchar(3);not null"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DonorModel) TableName() string {
	return "donors"
}

// ToDomain converts the persistence model to a domain Donor entity.
func (m *DonorModel) ToDomain() *budget.Donor {
	return &budget.Donor{
		BaseAggregateRoot: m.toAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Country:           m.Country,
		Contact:           m.Contact,
		Email:             m.Email,
		Currency:          valueobject.Currency(m.Currency),
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Donor entity.
func (m *DonorModel) FromDomain(d *budget.Donor) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Code = d.Code
	m.Name = d.Name
	m.Country = d.Country
	m.Contact = d.Contact
	m.Email = d.Email
	m.Currency = string(d.Currency)
	m.Active = d.Active
}

// DonorModelFromDomain creates a new persistence model from a domain Donor.
func DonorModelFromDomain(d *budget.Donor) *DonorModel {
	m := &DonorModel{}
	m.FromDomain(d)
	return m
}

// BudgetCategoryModel is the persistence model for budget categories.
type BudgetCategoryModel struct {
	BaseModel
	Code  string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name  string `gorm:"type:varchar(200);not null"`
	Order int    `gorm:"column:sort_order;not null;default:0"`
}

// TableName returns the table name for GORM
func (BudgetCategoryModel) TableName() string {
	return "budget_categories"
}

// ToDomain converts the persistence model to a domain BudgetCategory.
func (m *BudgetCategoryModel) ToDomain() *budget.BudgetCategory {
	return &budget.BudgetCategory{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		Order:      m.Order,
	}
}

// FromDomain populates the persistence model from a domain BudgetCategory.
func (m *BudgetCategoryModel) FromDomain(c *budget.BudgetCategory) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Name = c.Name
	m.Order = c.Order
}

// BudgetCategoryModelFromDomain creates a new persistence model from a
// domain BudgetCategory.
func BudgetCategoryModelFromDomain(c *budget.BudgetCategory) *BudgetCategoryModel {
	m := &BudgetCategoryModel{}
	m.FromDomain(c)
	return m
}

// ProjectModel is the persistence model for the Project aggregate root.
// Budget lines and their per-year amounts are owned rows rewritten on
// every save.
type ProjectModel struct {
	AggregateModel
	Code        string            `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name        string            `gorm:"type:varchar(200);not null"`
	DonorID     *uuid.UUID        `gorm:"type:uuid;index"`
	StartDate   *time.Time        `gorm:""`
	EndDate     *time.Time        `gorm:""`
	TotalBudget decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Currency    string            `gorm:"type:varchar(3);not null"`
	Status      string            `gorm:"type:varchar(20);not null;index"`
	BudgetLines []BudgetLineModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// BudgetLineModel is one planned spending row of a project budget.
type BudgetLineModel struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key"`
	ProjectID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	CategoryID    *uuid.UUID        `gorm:"type:uuid;index"`
	Code          string            `gorm:"type:varchar(20);not null"`
	Label         string            `gorm:"type:varchar(500);not null"`
	Year          *int              `gorm:""`
	Quantity      decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	UnitCost      decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	PlannedAmount decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Position      int               `gorm:"not null"`
	Years         []BudgetYearModel `gorm:"foreignKey:BudgetLineID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BudgetLineModel) TableName() string {
	return "budget_lines"
}

// BudgetYearModel is the planned amount of a budget line for one year.
type BudgetYearModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	BudgetLineID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_year_line,priority:1"`
	Year          int             `gorm:"not null;uniqueIndex:idx_budget_year_line,priority:2"`
	PlannedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (BudgetYearModel) TableName() string {
	return "budget_years"
}

// ToDomain converts the persistence model to a domain Project entity.
func (m *ProjectModel) ToDomain() *budget.Project {
	project := &budget.Project{
		BaseAggregateRoot: m.toAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		DonorID:           m.DonorID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		TotalBudget:       m.TotalBudget,
		Currency:          valueobject.Currency(m.Currency),
		Status:            budget.ProjectStatus(m.Status),
	}
	project.BudgetLines = make([]budget.BudgetLine, len(m.BudgetLines))
	for i := range m.BudgetLines {
		project.BudgetLines[i] = m.BudgetLines[i].ToDomain()
	}
	return project
}

// FromDomain populates the persistence model from a domain Project entity.
func (m *ProjectModel) FromDomain(p *budget.Project) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.DonorID = p.DonorID
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.TotalBudget = p.TotalBudget
	m.Currency = string(p.Currency)
	m.Status = string(p.Status)
	m.BudgetLines = make([]BudgetLineModel, len(p.BudgetLines))
	for i := range p.BudgetLines {
		m.BudgetLines[i].FromDomain(p.BudgetLines[i])
	}
}

// ProjectModelFromDomain creates a new persistence model from a domain Project.
func ProjectModelFromDomain(p *budget.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

// ToDomain converts the persistence model to a domain BudgetLine.
func (m *BudgetLineModel) ToDomain() budget.BudgetLine {
	line := budget.BudgetLine{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		CategoryID:    m.CategoryID,
		Code:          m.Code,
		Label:         m.Label,
		Year:          m.Year,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		PlannedAmount: m.PlannedAmount,
		Position:      m.Position,
	}
	line.Years = make([]budget.BudgetYear, len(m.Years))
	for i := range m.Years {
		line.Years[i] = budget.BudgetYear{
			ID:            m.Years[i].ID,
			BudgetLineID:  m.Years[i].BudgetLineID,
			Year:          m.Years[i].Year,
			PlannedAmount: m.Years[i].PlannedAmount,
		}
	}
	return line
}

// FromDomain populates the persistence model from a domain BudgetLine.
func (m *BudgetLineModel) FromDomain(l budget.BudgetLine) {
	m.ID = l.ID
	m.ProjectID = l.ProjectID
	m.CategoryID = l.CategoryID
	m.Code = l.Code
	m.Label = l.Label
	m.Year = l.Year
	m.Quantity = l.Quantity
	m.UnitCost = l.UnitCost
	m.PlannedAmount = l.PlannedAmount
	m.Position = l.Position
	m.Years = make([]BudgetYearModel, len(l.Years))
	for i := range l.Years {
		m.Years[i] = BudgetYearModel{
			ID:            l.Years[i].ID,
			BudgetLineID:  l.Years[i].BudgetLineID,
			Year:          l.Years[i].Year,
			PlannedAmount: l.Years[i].PlannedAmount,
		}
	}
}
