package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/asset"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAssetRepository implements asset.Repository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// withDepreciation preloads the owned depreciation schedule
func withDepreciation(db *gorm.DB) *gorm.DB {
	return db.Preload("DepreciationLines", func(db *gorm.DB) *gorm.DB {
		return db.Order("depreciation_lines.year ASC")
	})
}

// FindByID finds an asset with its depreciation schedule
func (r *GormAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.FixedAsset, error) {
	var m models.FixedAssetModel
	if err := withDepreciation(session(ctx, r.db)).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCode finds an asset by its unique code
func (r *GormAssetRepository) FindByCode(ctx context.Context, code string) (*asset.FixedAsset, error) {
	var m models.FixedAssetModel
	if err := withDepreciation(session(ctx, r.db)).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds assets matching the filter
func (r *GormAssetRepository) FindAll(ctx context.Context, filter asset.Filter) ([]asset.FixedAsset, error) {
	var ms []models.FixedAssetModel
	query := r.applyFilter(withDepreciation(session(ctx, r.db)).Model(&models.FixedAssetModel{}), filter)
	query = applyListOptions(query, filter.Filter, AssetSortFields, "code")

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainAssets(ms), nil
}

// FindActive lists assets still being depreciated
func (r *GormAssetRepository) FindActive(ctx context.Context) ([]asset.FixedAsset, error) {
	var ms []models.FixedAssetModel
	if err := withDepreciation(session(ctx, r.db)).
		Where("status = ?", string(asset.StatusActive)).
		Order("code ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainAssets(ms), nil
}

// Save creates or updates an asset. The depreciation schedule is an
// owned collection wiped and rewritten on every save; the unique
// (asset, year) index backs the one-line-per-year invariant.
func (r *GormAssetRepository) Save(ctx context.Context, a *asset.FixedAsset) error {
	m := models.FixedAssetModelFromDomain(a)
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("DepreciationLines").Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", m.ID).Delete(&models.DepreciationLineModel{}).Error; err != nil {
			return err
		}
		if len(m.DepreciationLines) > 0 {
			if err := tx.Create(&m.DepreciationLines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ExistsByCode checks if an asset code is already taken
func (r *GormAssetRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.FixedAssetModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts assets matching the filter
func (r *GormAssetRepository) Count(ctx context.Context, filter asset.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(session(ctx, r.db).Model(&models.FixedAssetModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies asset filter options without pagination
func (r *GormAssetRepository) applyFilter(query *gorm.DB, filter asset.Filter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR description LIKE ?", pattern, pattern)
	}
	return query
}

// toDomainAssets converts a model slice to domain assets
func toDomainAssets(ms []models.FixedAssetModel) []asset.FixedAsset {
	assets := make([]asset.FixedAsset, len(ms))
	for i := range ms {
		assets[i] = *ms[i].ToDomain()
	}
	return assets
}

// Ensure GormAssetRepository implements asset.Repository
var _ asset.Repository = (*GormAssetRepository)(nil)
