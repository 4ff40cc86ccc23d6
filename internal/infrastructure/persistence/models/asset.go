package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/asset"
	"github.com/shopspring/decimal"
)

// FixedAssetModel is the persistence model for the FixedAsset aggregate
// root. Depreciation lines are owned rows rewritten on every save.
type FixedAssetModel struct {
	AggregateModel
	Code              string                  `gorm:"type:varchar(20);not null;uniqueIndex"`
	Description       string                  `gorm:"type:varchar(500);not null"`
	Category          string                  `gorm:"type:varchar(20);not null;index"`
	AcquisitionDate   time.Time               `gorm:"not null"`
	AcquisitionValue  decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	UsefulLifeYears   int                     `gorm:"not null"`
	Status            string                  `gorm:"type:varchar(20);not null;index"`
	DisposalDate      *time.Time              `gorm:""`
	DisposalValue     *decimal.Decimal        `gorm:"type:decimal(18,2)"`
	ProjectID         *uuid.UUID              `gorm:"type:uuid;index"`
	AssetAccountID    *uuid.UUID              `gorm:"type:uuid"`
	AmortAccountID    *uuid.UUID              `gorm:"type:uuid"`
	DotationAccountID *uuid.UUID              `gorm:"type:uuid"`
	DepreciationLines []DepreciationLineModel `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (FixedAssetModel) TableName() string {
	return "fixed_assets"
}

// DepreciationLineModel is one fiscal year's depreciation charge.
// The (asset, year) slot is unique.
type DepreciationLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	AssetID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_depreciation_asset_year,priority:1"`
	FiscalYearID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Year         int             `gorm:"not null;uniqueIndex:idx_depreciation_asset_year,priority:2"`
	Dotation     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Cumulative   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	NetBookValue decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ComputedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DepreciationLineModel) TableName() string {
	return "depreciation_lines"
}

// ToDomain converts the persistence model to a domain FixedAsset entity.
func (m *FixedAssetModel) ToDomain() *asset.FixedAsset {
	a := &asset.FixedAsset{
		BaseAggregateRoot: m.toAggregateRoot(),
		Code:              m.Code,
		Description:       m.Description,
		Category:          asset.Category(m.Category),
		AcquisitionDate:   m.AcquisitionDate,
		AcquisitionValue:  m.AcquisitionValue,
		UsefulLifeYears:   m.UsefulLifeYears,
		Status:            asset.Status(m.Status),
		DisposalDate:      m.DisposalDate,
		DisposalValue:     m.DisposalValue,
		ProjectID:         m.ProjectID,
		AssetAccountID:    m.AssetAccountID,
		AmortAccountID:    m.AmortAccountID,
		DotationAccountID: m.DotationAccountID,
	}
	a.DepreciationLines = make([]asset.DepreciationLine, len(m.DepreciationLines))
	for i := range m.DepreciationLines {
		a.DepreciationLines[i] = m.DepreciationLines[i].ToDomain()
	}
	return a
}

// FromDomain populates the persistence model from a domain FixedAsset entity.
func (m *FixedAssetModel) FromDomain(a *asset.FixedAsset) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Code = a.Code
	m.Description = a.Description
	m.Category = string(a.Category)
	m.AcquisitionDate = a.AcquisitionDate
	m.AcquisitionValue = a.AcquisitionValue
	m.UsefulLifeYears = a.UsefulLifeYears
	m.Status = string(a.Status)
	m.DisposalDate = a.DisposalDate
	m.DisposalValue = a.DisposalValue
	m.ProjectID = a.ProjectID
	m.AssetAccountID = a.AssetAccountID
	m.AmortAccountID = a.AmortAccountID
	m.DotationAccountID = a.DotationAccountID
	m.DepreciationLines = make([]DepreciationLineModel, len(a.DepreciationLines))
	for i := range a.DepreciationLines {
		m.DepreciationLines[i].FromDomain(a.DepreciationLines[i])
	}
}

// FixedAssetModelFromDomain creates a new persistence model from a domain FixedAsset.
func FixedAssetModelFromDomain(a *asset.FixedAsset) *FixedAssetModel {
	m := &FixedAssetModel{}
	m.FromDomain(a)
	return m
}

// ToDomain converts the persistence model to a domain DepreciationLine.
func (m *DepreciationLineModel) ToDomain() asset.DepreciationLine {
	return asset.DepreciationLine{
		ID:           m.ID,
		AssetID:      m.AssetID,
		FiscalYearID: m.FiscalYearID,
		Year:         m.Year,
		Dotation:     m.Dotation,
		Cumulative:   m.Cumulative,
		NetBookValue: m.NetBookValue,
		ComputedAt:   m.ComputedAt,
	}
}

// FromDomain populates the persistence model from a domain DepreciationLine.
func (m *DepreciationLineModel) FromDomain(l asset.DepreciationLine) {
	m.ID = l.ID
	m.AssetID = l.AssetID
	m.FiscalYearID = l.FiscalYearID
	m.Year = l.Year
	m.Dotation = l.Dotation
	m.Cumulative = l.Cumulative
	m.NetBookValue = l.NetBookValue
	m.ComputedAt = l.ComputedAt
}
