package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/advance"
	"github.com/shopspring/decimal"
)

// AdvanceModel is the persistence model for the Advance aggregate root.
type AdvanceModel struct {
	AggregateModel
	Number               string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	IssuedAt             time.Time       `gorm:"not null"`
	Beneficiary          string          `gorm:"type:varchar(200);not null;index"`
	Amount               decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Purpose              string          `gorm:"type:varchar(500)"`
	ProjectID            *uuid.UUID      `gorm:"type:uuid;index"`
	Status               string          `gorm:"type:varchar(20);not null;index"`
	DueDate              time.Time       `gorm:"not null;index"`
	JustifiedAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ReimbursedAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Notes                string          `gorm:"type:text"`
	DisbursementEntryID  *uuid.UUID      `gorm:"type:uuid"`
	JustificationEntryID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (AdvanceModel) TableName() string {
	return "advances"
}

// ToDomain converts the persistence model to a domain Advance entity.
func (m *AdvanceModel) ToDomain() *advance.Advance {
	return &advance.Advance{
		BaseAggregateRoot:    m.toAggregateRoot(),
		Number:               m.Number,
		IssuedAt:             m.IssuedAt,
		Beneficiary:          m.Beneficiary,
		Amount:               m.Amount,
		Purpose:              m.Purpose,
		ProjectID:            m.ProjectID,
		Status:               advance.Status(m.Status),
		DueDate:              m.DueDate,
		JustifiedAmount:      m.JustifiedAmount,
		ReimbursedAmount:     m.ReimbursedAmount,
		Notes:                m.Notes,
		DisbursementEntryID:  m.DisbursementEntryID,
		JustificationEntryID: m.JustificationEntryID,
	}
}

// FromDomain populates the persistence model from a domain Advance entity.
func (m *AdvanceModel) FromDomain(a *advance.Advance) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Number = a.Number
	m.IssuedAt = a.IssuedAt
	m.Beneficiary = a.Beneficiary
	m.Amount = a.Amount
	m.Purpose = a.Purpose
	m.ProjectID = a.ProjectID
	m.Status = string(a.Status)
	m.DueDate = a.DueDate
	m.JustifiedAmount = a.JustifiedAmount
	m.ReimbursedAmount = a.ReimbursedAmount
	m.Notes = a.Notes
	m.DisbursementEntryID = a.DisbursementEntryID
	m.JustificationEntryID = a.JustificationEntryID
}

// AdvanceModelFromDomain creates a new persistence model from a domain Advance.
func AdvanceModelFromDomain(a *advance.Advance) *AdvanceModel {
	m := &AdvanceModel{}
	m.FromDomain(a)
	return m
}
