package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/financing"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// FinancingModel is the persistence model for the Financing aggregate
// root. Tranches are owned rows rewritten on every save.
type FinancingModel struct {
	AggregateModel
	Reference     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	DonorID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Affectation   string          `gorm:"type:varchar(20);not null"`
	ProjectID     *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	AgreementDate time.Time       `gorm:"not null"`
	EndDate       *time.Time      `gorm:""`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	Tranches      []TrancheModel  `gorm:"foreignKey:FinancingID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (FinancingModel) TableName() string {
	return "financings"
}

// TrancheModel is one scheduled installment of a financing.
type TrancheModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	FinancingID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Sequence       int             `gorm:"not null"`
	PlannedAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PlannedDate    time.Time       `gorm:"not null;index"`
	ReceivedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ReceivedDate   *time.Time      `gorm:""`
	Status         string          `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (TrancheModel) TableName() string {
	return "financing_tranches"
}

// ToDomain converts the persistence model to a domain Financing entity.
func (m *FinancingModel) ToDomain() *financing.Financing {
	f := &financing.Financing{
		BaseAggregateRoot: m.toAggregateRoot(),
		Reference:         m.Reference,
		DonorID:           m.DonorID,
		Affectation:       financing.AffectationType(m.Affectation),
		ProjectID:         m.ProjectID,
		Amount:            m.Amount,
		Currency:          valueobject.Currency(m.Currency),
		AgreementDate:     m.AgreementDate,
		EndDate:           m.EndDate,
		Status:            financing.Status(m.Status),
	}
	f.Tranches = make([]financing.Tranche, len(m.Tranches))
	for i := range m.Tranches {
		f.Tranches[i] = m.Tranches[i].ToDomain()
	}
	return f
}

// FromDomain populates the persistence model from a domain Financing entity.
func (m *FinancingModel) FromDomain(f *financing.Financing) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.Reference = f.Reference
	m.DonorID = f.DonorID
	m.Affectation = string(f.Affectation)
	m.ProjectID = f.ProjectID
	m.Amount = f.Amount
	m.Currency = string(f.Currency)
	m.AgreementDate = f.AgreementDate
	m.EndDate = f.EndDate
	m.Status = string(f.Status)
	m.Tranches = make([]TrancheModel, len(f.Tranches))
	for i := range f.Tranches {
		m.Tranches[i].FromDomain(f.Tranches[i])
	}
}

// FinancingModelFromDomain creates a new persistence model from a domain Financing.
func FinancingModelFromDomain(f *financing.Financing) *FinancingModel {
	m := &FinancingModel{}
	m.FromDomain(f)
	return m
}

// ToDomain converts the persistence model to a domain Tranche.
func (m *TrancheModel) ToDomain() financing.Tranche {
	return financing.Tranche{
		ID:             m.ID,
		FinancingID:    m.FinancingID,
		Sequence:       m.Sequence,
		PlannedAmount:  m.PlannedAmount,
		PlannedDate:    m.PlannedDate,
		ReceivedAmount: m.ReceivedAmount,
		ReceivedDate:   m.ReceivedDate,
		Status:         financing.TrancheStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Tranche.
func (m *TrancheModel) FromDomain(t financing.Tranche) {
	m.ID = t.ID
	m.FinancingID = t.FinancingID
	m.Sequence = t.Sequence
	m.PlannedAmount = t.PlannedAmount
	m.PlannedDate = t.PlannedDate
	m.ReceivedAmount = t.ReceivedAmount
	m.ReceivedDate = t.ReceivedDate
	m.Status = string(t.Status)
}
