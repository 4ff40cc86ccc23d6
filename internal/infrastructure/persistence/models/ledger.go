package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// EntryModel is the persistence model for the Entry aggregate root.
// Lines and allocations are owned rows rewritten on every save.
type EntryModel struct {
	AggregateModel
	Number       string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Date         time.Time       `gorm:"not null;index"`
	JournalID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	FiscalYearID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Label        string          `gorm:"type:varchar(500);not null"`
	Reference    string          `gorm:"type:varchar(100)"`
	CurrencyCode string          `gorm:"type:varchar(3);not null"`
	ExchangeRate decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Validated    bool            `gorm:"not null;default:false;index"`
	ValidatedAt  *time.Time
	ValidatedBy  string           `gorm:"type:varchar(100)"`
	CreatedBy    string           `gorm:"type:varchar(100)"`
	Lines        []EntryLineModel `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (EntryModel) TableName() string {
	return "entries"
}

// EntryLineModel is one debit/credit posting row of an entry.
type EntryLineModel struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key"`
	EntryID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	AccountID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProjectID    *uuid.UUID        `gorm:"type:uuid;index"`
	BudgetLineID *uuid.UUID        `gorm:"type:uuid;index"`
	Label        string            `gorm:"type:varchar(500);not null"`
	Debit        decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Credit       decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Position     int               `gorm:"not null"`
	Allocations  []AllocationModel `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (EntryLineModel) TableName() string {
	return "entry_lines"
}

// AllocationModel is one analytical split row of an entry line.
type AllocationModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	LineID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BudgetLineID *uuid.UUID      `gorm:"type:uuid;index"`
	Percentage   decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (AllocationModel) TableName() string {
	return "analytical_allocations"
}

// ToDomain converts the persistence model to a domain Entry entity.
func (m *EntryModel) ToDomain() *ledger.Entry {
	entry := &ledger.Entry{
		BaseAggregateRoot: m.toAggregateRoot(),
		Number:            m.Number,
		Date:              m.Date,
		JournalID:         m.JournalID,
		FiscalYearID:      m.FiscalYearID,
		Label:             m.Label,
		Reference:         m.Reference,
		CurrencyCode:      valueobject.Currency(m.CurrencyCode),
		ExchangeRate:      m.ExchangeRate,
		Validated:         m.Validated,
		ValidatedAt:       m.ValidatedAt,
		ValidatedBy:       m.ValidatedBy,
		CreatedBy:         m.CreatedBy,
	}
	entry.Lines = make([]ledger.Line, len(m.Lines))
	for i := range m.Lines {
		entry.Lines[i] = m.Lines[i].ToDomain()
	}
	return entry
}

// FromDomain populates the persistence model from a domain Entry entity.
func (m *EntryModel) FromDomain(e *ledger.Entry) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Number = e.Number
	m.Date = e.Date
	m.JournalID = e.JournalID
	m.FiscalYearID = e.FiscalYearID
	m.Label = e.Label
	m.Reference = e.Reference
	m.CurrencyCode = string(e.CurrencyCode)
	m.ExchangeRate = e.ExchangeRate
	m.Validated = e.Validated
	m.ValidatedAt = e.ValidatedAt
	m.ValidatedBy = e.ValidatedBy
	m.CreatedBy = e.CreatedBy
	m.Lines = make([]EntryLineModel, len(e.Lines))
	for i := range e.Lines {
		m.Lines[i].FromDomain(e.Lines[i])
	}
}

// EntryModelFromDomain creates a new persistence model from a domain Entry.
func EntryModelFromDomain(e *ledger.Entry) *EntryModel {
	m := &EntryModel{}
	m.FromDomain(e)
	return m
}

// ToDomain converts the persistence model to a domain Line.
func (m *EntryLineModel) ToDomain() ledger.Line {
	line := ledger.Line{
		ID:           m.ID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		ProjectID:    m.ProjectID,
		BudgetLineID: m.BudgetLineID,
		Label:        m.Label,
		Debit:        m.Debit,
		Credit:       m.Credit,
		Position:     m.Position,
	}
	line.Allocations = make([]ledger.AnalyticalAllocation, len(m.Allocations))
	for i := range m.Allocations {
		line.Allocations[i] = m.Allocations[i].ToDomain()
	}
	return line
}

// FromDomain populates the persistence model from a domain Line.
func (m *EntryLineModel) FromDomain(l ledger.Line) {
	m.ID = l.ID
	m.EntryID = l.EntryID
	m.AccountID = l.AccountID
	m.ProjectID = l.ProjectID
	m.BudgetLineID = l.BudgetLineID
	m.Label = l.Label
	m.Debit = l.Debit
	m.Credit = l.Credit
	m.Position = l.Position
	m.Allocations = make([]AllocationModel, len(l.Allocations))
	for i := range l.Allocations {
		m.Allocations[i].FromDomain(l.Allocations[i])
	}
}

// ToDomain converts the persistence model to a domain AnalyticalAllocation.
func (m *AllocationModel) ToDomain() ledger.AnalyticalAllocation {
	return ledger.AnalyticalAllocation{
		ID:           m.ID,
		LineID:       m.LineID,
		ProjectID:    m.ProjectID,
		BudgetLineID: m.BudgetLineID,
		Percentage:   m.Percentage,
		Amount:       m.Amount,
	}
}

// FromDomain populates the persistence model from a domain AnalyticalAllocation.
func (m *AllocationModel) FromDomain(a ledger.AnalyticalAllocation) {
	m.ID = a.ID
	m.LineID = a.LineID
	m.ProjectID = a.ProjectID
	m.BudgetLineID = a.BudgetLineID
	m.Percentage = a.Percentage
	m.Amount = a.Amount
}

// SupportingDocumentModel is the persistence model for attachment metadata.
type SupportingDocumentModel struct {
	BaseModel
	EntryID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	LineID       *uuid.UUID `gorm:"type:uuid;index"`
	Kind         string     `gorm:"type:varchar(20);not null"`
	Number       string     `gorm:"type:varchar(100)"`
	StoragePath  string     `gorm:"type:varchar(500);not null"`
	OriginalName string     `gorm:"type:varchar(255)"`
	Date         time.Time  `gorm:"not null"`
	Description  string     `gorm:"type:text"`
	UploadedBy   string     `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (SupportingDocumentModel) TableName() string {
	return "supporting_documents"
}

// ToDomain converts the persistence model to a domain SupportingDocument.
func (m *SupportingDocumentModel) ToDomain() *ledger.SupportingDocument {
	return &ledger.SupportingDocument{
		BaseEntity:   m.BaseModel.ToDomain(),
		EntryID:      m.EntryID,
		LineID:       m.LineID,
		Kind:         ledger.DocumentKind(m.Kind),
		Number:       m.Number,
		StoragePath:  m.StoragePath,
		OriginalName: m.OriginalName,
		Date:         m.Date,
		Description:  m.Description,
		UploadedBy:   m.UploadedBy,
	}
}

// FromDomain populates the persistence model from a domain SupportingDocument.
func (m *SupportingDocumentModel) FromDomain(d *ledger.SupportingDocument) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.EntryID = d.EntryID
	m.LineID = d.LineID
	m.Kind = string(d.Kind)
	m.Number = d.Number
	m.StoragePath = d.StoragePath
	m.OriginalName = d.OriginalName
	m.Date = d.Date
	m.Description = d.Description
	m.UploadedBy = d.UploadedBy
}

// SupportingDocumentModelFromDomain creates a new persistence model from a
// domain SupportingDocument.
func SupportingDocumentModelFromDomain(d *ledger.SupportingDocument) *SupportingDocumentModel {
	m := &SupportingDocumentModel{}
	m.FromDomain(d)
	return m
}

// SequenceModel is a named gap-free counter. Rows are locked for update
// while the next value is handed out.
type SequenceModel struct {
	Scope string `gorm:"type:varchar(50);primaryKey"`
	Year  int    `gorm:"primaryKey"`
	Value int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SequenceModel) TableName() string {
	return "sequences"
}

// AuditRecordModel is one append-only row of the audit trail.
type AuditRecordModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	Table     string          `gorm:"column:table_name;type:varchar(50);not null;index:idx_audit_record,priority:1"`
	RecordID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_audit_record,priority:2"`
	Action    string          `gorm:"type:varchar(20);not null"`
	OldValues json.RawMessage `gorm:"type:jsonb"`
	NewValues json.RawMessage `gorm:"type:jsonb"`
	Actor     string          `gorm:"type:varchar(100);index"`
	Timestamp time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditRecordModel) TableName() string {
	return "audit_records"
}

// ToDomain converts the persistence model to a domain audit Record.
func (m *AuditRecordModel) ToDomain() *audit.Record {
	return &audit.Record{
		ID:        m.ID,
		Table:     m.Table,
		RecordID:  m.RecordID,
		Action:    audit.Action(m.Action),
		OldValues: m.OldValues,
		NewValues: m.NewValues,
		Actor:     m.Actor,
		Timestamp: m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain audit Record.
func (m *AuditRecordModel) FromDomain(r *audit.Record) {
	m.ID = r.ID
	m.Table = r.Table
	m.RecordID = r.RecordID
	m.Action = string(r.Action)
	m.OldValues = r.OldValues
	m.NewValues = r.NewValues
	m.Actor = r.Actor
	m.Timestamp = r.Timestamp
}

// AuditRecordModelFromDomain creates a new persistence model from a domain Record.
func AuditRecordModelFromDomain(r *audit.Record) *AuditRecordModel {
	m := &AuditRecordModel{}
	m.FromDomain(r)
	return m
}
