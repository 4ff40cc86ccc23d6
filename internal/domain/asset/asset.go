package asset

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category determines the SYSCOA standard useful life of a fixed asset
type Category string

const (
	CategoryIT        Category = "informatique"
	CategoryVehicle   Category = "vehicule"
	CategoryFurniture Category = "mobilier"
	CategoryBuilding  Category = "batiment"
)

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryIT, CategoryVehicle, CategoryFurniture, CategoryBuilding:
		return true
	}
	return false
}

// DefaultUsefulLife returns the SYSCOA standard useful life in years
func (c Category) DefaultUsefulLife() int {
	switch c {
	case CategoryIT:
		return 3
	case CategoryVehicle:
		return 5
	case CategoryFurniture:
		return 10
	case CategoryBuilding:
		return 20
	default:
		return 5
	}
}

// CodePrefix returns the asset-code prefix of the category
func (c Category) CodePrefix() string {
	switch c {
	case CategoryIT:
		return "IT"
	case CategoryVehicle:
		return "VH"
	case CategoryFurniture:
		return "MB"
	case CategoryBuilding:
		return "BT"
	default:
		return "IM"
	}
}

// FormatAssetCode renders an asset code, e.g. IT0004
func FormatAssetCode(category Category, sequence int) string {
	return fmt.Sprintf("%s%04d", category.CodePrefix(), sequence)
}

// Status represents the lifecycle state of a fixed asset
type Status string

const (
	StatusActive   Status = "actif"
	StatusSold     Status = "cede"
	StatusScrapped Status = "rebut"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSold, StatusScrapped:
		return true
	}
	return false
}

// DepreciationLine is one fiscal year's depreciation charge for an
// asset. At most one exists per (asset, year).
type DepreciationLine struct {
	ID           uuid.UUID
	AssetID      uuid.UUID
	FiscalYearID uuid.UUID
	Year         int
	Dotation     decimal.Decimal
	Cumulative   decimal.Decimal
	NetBookValue decimal.Decimal
	ComputedAt   time.Time
}

// FixedAsset is a depreciable asset with a straight-line schedule. It
// owns its depreciation lines, one per processed fiscal year.
type FixedAsset struct {
	shared.BaseAggregateRoot
	Code              string
	Description       string
	Category          Category
	AcquisitionDate   time.Time
	AcquisitionValue  decimal.Decimal
	UsefulLifeYears   int
	Status            Status
	DisposalDate      *time.Time
	DisposalValue     *decimal.Decimal
	ProjectID         *uuid.UUID
	AssetAccountID    *uuid.UUID
	AmortAccountID    *uuid.UUID
	DotationAccountID *uuid.UUID
	DepreciationLines []DepreciationLine
}

// NewFixedAsset registers an asset. A zero usefulLifeYears falls back
// to the category's SYSCOA standard.
func NewFixedAsset(code, description string, category Category, acquisitionDate time.Time, acquisitionValue decimal.Decimal, usefulLifeYears int, projectID *uuid.UUID) (*FixedAsset, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Asset code is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Asset description is required")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown asset category")
	}
	if acquisitionDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Acquisition date is required")
	}
	if !acquisitionValue.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Acquisition value must be positive")
	}
	if usefulLifeYears < 0 {
		return nil, shared.NewDomainError("INVALID_LIFE", "Useful life must not be negative")
	}
	if usefulLifeYears == 0 {
		usefulLifeYears = category.DefaultUsefulLife()
	}
	return &FixedAsset{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Description:       description,
		Category:          category,
		AcquisitionDate:   acquisitionDate,
		AcquisitionValue:  acquisitionValue,
		UsefulLifeYears:   usefulLifeYears,
		Status:            StatusActive,
		ProjectID:         projectID,
	}, nil
}

// AnnualDotation is the full-year straight-line depreciation charge
func (a *FixedAsset) AnnualDotation() decimal.Decimal {
	return a.AcquisitionValue.Div(decimal.NewFromInt(int64(a.UsefulLifeYears))).Round(2)
}

// DepreciationRate is the annual rate in percent
func (a *FixedAsset) DepreciationRate() decimal.Decimal {
	return decimal.NewFromInt(100).Div(decimal.NewFromInt(int64(a.UsefulLifeYears))).Round(2)
}

// CumulativeDepreciation sums all computed dotations
func (a *FixedAsset) CumulativeDepreciation() decimal.Decimal {
	total := decimal.Zero
	for _, line := range a.DepreciationLines {
		total = total.Add(line.Dotation)
	}
	return total
}

// NetBookValue is the acquisition value minus cumulative depreciation
func (a *FixedAsset) NetBookValue() decimal.Decimal {
	return a.AcquisitionValue.Sub(a.CumulativeDepreciation())
}

// HasDepreciationFor reports whether a year was already processed
func (a *FixedAsset) HasDepreciationFor(year int) bool {
	for _, line := range a.DepreciationLines {
		if line.Year == year {
			return true
		}
	}
	return false
}

// ComputeDepreciation computes and records the dotation of one fiscal
// year. The first year is pro-rated by the months remaining after
// acquisition. Computing the same year twice is a conflict and leaves
// the schedule untouched.
func (a *FixedAsset) ComputeDepreciation(fiscalYearID uuid.UUID, year int) (*DepreciationLine, error) {
	if a.Status != StatusActive {
		return nil, shared.NewDomainError("ASSET_NOT_ACTIVE",
			fmt.Sprintf("Asset %s is not active", a.Code))
	}
	if a.HasDepreciationFor(year) {
		return nil, shared.NewDomainError("DEPRECIATION_EXISTS",
			fmt.Sprintf("Depreciation for year %d already computed", year))
	}

	dotation := a.AnnualDotation()
	if a.AcquisitionDate.Year() == year {
		monthsHeld := int64(13 - int(a.AcquisitionDate.Month()))
		dotation = dotation.Mul(decimal.NewFromInt(monthsHeld)).Div(decimal.NewFromInt(12)).Round(2)
	}

	cumulative := a.CumulativeDepreciation().Add(dotation)
	if cumulative.GreaterThan(a.AcquisitionValue) {
		dotation = dotation.Sub(cumulative.Sub(a.AcquisitionValue))
		cumulative = a.AcquisitionValue
	}

	line := DepreciationLine{
		ID:           uuid.New(),
		AssetID:      a.ID,
		FiscalYearID: fiscalYearID,
		Year:         year,
		Dotation:     dotation,
		Cumulative:   cumulative,
		NetBookValue: a.AcquisitionValue.Sub(cumulative),
		ComputedAt:   time.Now(),
	}
	a.DepreciationLines = append(a.DepreciationLines, line)
	return &line, nil
}

// CanDispose checks if the asset can still be disposed of
func (a *FixedAsset) CanDispose() bool {
	return a.Status == StatusActive
}

// Dispose retires the asset, by sale (cede) or scrapping (rebut).
// Terminal.
func (a *FixedAsset) Dispose(date time.Time, reason Status, saleValue *decimal.Decimal) error {
	if !a.CanDispose() {
		return shared.NewDomainError("ASSET_DISPOSED", "Asset is already disposed of")
	}
	if reason != StatusSold && reason != StatusScrapped {
		return shared.NewDomainError("INVALID_REASON", "Disposal reason must be cede or rebut")
	}
	if date.IsZero() {
		date = time.Now()
	}
	a.Status = reason
	a.DisposalDate = &date
	a.DisposalValue = saleValue
	return nil
}
