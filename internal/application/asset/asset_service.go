package asset

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/asset"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AssetService manages fixed assets and their depreciation schedules
type AssetService struct {
	assetRepo      asset.Repository
	seqRepo        ledger.SequenceRepository
	fiscalYearRepo accounting.FiscalYearRepository
	trail          *audit.Trail
	tx             shared.TxManager
	logger         *zap.Logger
}

// NewAssetService creates a new AssetService
func NewAssetService(
	assetRepo asset.Repository,
	seqRepo ledger.SequenceRepository,
	fiscalYearRepo accounting.FiscalYearRepository,
	trail *audit.Trail,
	tx shared.TxManager,
	logger *zap.Logger,
) *AssetService {
	return &AssetService{
		assetRepo:      assetRepo,
		seqRepo:        seqRepo,
		fiscalYearRepo: fiscalYearRepo,
		trail:          trail,
		tx:             tx,
		logger:         logger,
	}
}

// RegisterAssetRequest represents a request to register a fixed asset
type RegisterAssetRequest struct {
	Description      string          `json:"description" binding:"required"`
	Category         asset.Category  `json:"category" binding:"required"`
	AcquisitionDate  time.Time       `json:"acquisition_date" binding:"required"`
	AcquisitionValue decimal.Decimal `json:"acquisition_value" binding:"required"`
	UsefulLifeYears  int             `json:"useful_life_years"`
	ProjectID        *uuid.UUID      `json:"project_id"`
	Actor            string          `json:"-"`
}

// DisposeAssetRequest represents a disposal (sale or scrapping)
type DisposeAssetRequest struct {
	Date      time.Time        `json:"date"`
	Reason    asset.Status     `json:"reason" binding:"required"`
	SaleValue *decimal.Decimal `json:"sale_value"`
	Actor     string           `json:"-"`
}

// DepreciationLineResponse is one year of a depreciation schedule
type DepreciationLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	FiscalYearID uuid.UUID       `json:"fiscal_year_id"`
	Year         int             `json:"year"`
	Dotation     decimal.Decimal `json:"dotation"`
	Cumulative   decimal.Decimal `json:"cumulative"`
	NetBookValue decimal.Decimal `json:"net_book_value"`
	ComputedAt   time.Time       `json:"computed_at"`
}

// AssetResponse represents a fixed asset in API responses
type AssetResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Code              string                     `json:"code"`
	Description       string                     `json:"description"`
	Category          asset.Category             `json:"category"`
	AcquisitionDate   time.Time                  `json:"acquisition_date"`
	AcquisitionValue  decimal.Decimal            `json:"acquisition_value"`
	UsefulLifeYears   int                        `json:"useful_life_years"`
	AnnualDotation    decimal.Decimal            `json:"annual_dotation"`
	DepreciationRate  decimal.Decimal            `json:"depreciation_rate"`
	Cumulative        decimal.Decimal            `json:"cumulative_depreciation"`
	NetBookValue      decimal.Decimal            `json:"net_book_value"`
	Status            asset.Status               `json:"status"`
	DisposalDate      *time.Time                 `json:"disposal_date,omitempty"`
	DisposalValue     *decimal.Decimal           `json:"disposal_value,omitempty"`
	ProjectID         *uuid.UUID                 `json:"project_id,omitempty"`
	DepreciationLines []DepreciationLineResponse `json:"depreciation_lines"`
}

// RegisterAsset registers an asset with a generated category-prefixed code
func (s *AssetService) RegisterAsset(ctx context.Context, req RegisterAssetRequest) (*AssetResponse, error) {
	if !req.Category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown asset category")
	}

	var fixedAsset *asset.FixedAsset
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		seq, err := s.seqRepo.Next(ctx, "asset_"+string(req.Category), 0)
		if err != nil {
			return err
		}
		fixedAsset, err = asset.NewFixedAsset(
			asset.FormatAssetCode(req.Category, seq),
			req.Description, req.Category, req.AcquisitionDate,
			req.AcquisitionValue, req.UsefulLifeYears, req.ProjectID,
		)
		if err != nil {
			return err
		}
		if err := s.assetRepo.Save(ctx, fixedAsset); err != nil {
			return err
		}
		return s.trail.Write(ctx, "fixed_assets", fixedAsset.ID, audit.ActionCreate, nil, fixedAsset, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toAssetResponse(fixedAsset), nil
}

// ComputeDepreciation records the dotation of one asset for one fiscal
// year. The same (asset, year) pair cannot be computed twice.
func (s *AssetService) ComputeDepreciation(ctx context.Context, assetID uuid.UUID, year int, actor string) (*DepreciationLineResponse, error) {
	fixedAsset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	fy, err := s.fiscalYearRepo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if fy.Closed {
		return nil, shared.NewDomainError("FISCAL_YEAR_CLOSED", "Depreciation cannot be computed for a closed year")
	}

	line, err := fixedAsset.ComputeDepreciation(fy.ID, year)
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.assetRepo.Save(ctx, fixedAsset); err != nil {
			return err
		}
		return s.trail.Write(ctx, "depreciation_lines", line.ID, audit.ActionCreate, nil, line, actor)
	})
	if err != nil {
		return nil, err
	}
	return toDepreciationLineResponse(*line), nil
}

// ComputeYearResponse reports a batch depreciation run
type ComputeYearResponse struct {
	Computed int             `json:"computed"`
	Skipped  int             `json:"skipped"`
	Total    decimal.Decimal `json:"total_dotation"`
}

// ComputeYear runs depreciation for every active asset over one fiscal
// year. Assets already processed for the year are skipped.
func (s *AssetService) ComputeYear(ctx context.Context, year int, actor string) (*ComputeYearResponse, error) {
	fy, err := s.fiscalYearRepo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if fy.Closed {
		return nil, shared.NewDomainError("FISCAL_YEAR_CLOSED", "Depreciation cannot be computed for a closed year")
	}
	assets, err := s.assetRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := &ComputeYearResponse{Total: decimal.Zero}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		for i := range assets {
			fixedAsset := &assets[i]
			if fixedAsset.HasDepreciationFor(year) || fixedAsset.AcquisitionDate.Year() > year {
				resp.Skipped++
				continue
			}
			line, err := fixedAsset.ComputeDepreciation(fy.ID, year)
			if err != nil {
				resp.Skipped++
				continue
			}
			if err := s.assetRepo.Save(ctx, fixedAsset); err != nil {
				return err
			}
			if err := s.trail.Write(ctx, "depreciation_lines", line.ID, audit.ActionCreate, nil, line, actor); err != nil {
				return err
			}
			resp.Computed++
			resp.Total = resp.Total.Add(line.Dotation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("depreciation year computed",
		zap.Int("year", year),
		zap.Int("computed", resp.Computed),
		zap.Int("skipped", resp.Skipped))
	return resp, nil
}

// DisposeAsset retires an asset by sale or scrapping
func (s *AssetService) DisposeAsset(ctx context.Context, id uuid.UUID, req DisposeAssetRequest) (*AssetResponse, error) {
	fixedAsset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *fixedAsset
	if err := fixedAsset.Dispose(req.Date, req.Reason, req.SaleValue); err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.assetRepo.Save(ctx, fixedAsset); err != nil {
			return err
		}
		return s.trail.Write(ctx, "fixed_assets", fixedAsset.ID, audit.ActionUpdate, &before, fixedAsset, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toAssetResponse(fixedAsset), nil
}

// GetAsset returns one asset with its depreciation schedule
func (s *AssetService) GetAsset(ctx context.Context, id uuid.UUID) (*AssetResponse, error) {
	fixedAsset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAssetResponse(fixedAsset), nil
}

// ListAssets returns assets matching the filter
func (s *AssetService) ListAssets(ctx context.Context, filter asset.Filter) (*shared.Paginated[AssetResponse], error) {
	assets, err := s.assetRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.assetRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]AssetResponse, len(assets))
	for i := range assets {
		responses[i] = *toAssetResponse(&assets[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func toDepreciationLineResponse(line asset.DepreciationLine) *DepreciationLineResponse {
	return &DepreciationLineResponse{
		ID:           line.ID,
		FiscalYearID: line.FiscalYearID,
		Year:         line.Year,
		Dotation:     line.Dotation,
		Cumulative:   line.Cumulative,
		NetBookValue: line.NetBookValue,
		ComputedAt:   line.ComputedAt,
	}
}

func toAssetResponse(a *asset.FixedAsset) *AssetResponse {
	lines := make([]DepreciationLineResponse, len(a.DepreciationLines))
	for i, line := range a.DepreciationLines {
		lines[i] = *toDepreciationLineResponse(line)
	}
	return &AssetResponse{
		ID:                a.ID,
		Code:              a.Code,
		Description:       a.Description,
		Category:          a.Category,
		AcquisitionDate:   a.AcquisitionDate,
		AcquisitionValue:  a.AcquisitionValue,
		UsefulLifeYears:   a.UsefulLifeYears,
		AnnualDotation:    a.AnnualDotation(),
		DepreciationRate:  a.DepreciationRate(),
		Cumulative:        a.CumulativeDepreciation(),
		NetBookValue:      a.NetBookValue(),
		Status:            a.Status,
		DisposalDate:      a.DisposalDate,
		DisposalValue:     a.DisposalValue,
		ProjectID:         a.ProjectID,
		DepreciationLines: lines,
	}
}
