package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/financing"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFinancingRepository implements financing.Repository using GORM
type GormFinancingRepository struct {
	db *gorm.DB
}

// NewGormFinancingRepository creates a new GormFinancingRepository
func NewGormFinancingRepository(db *gorm.DB) *GormFinancingRepository {
	return &GormFinancingRepository{db: db}
}

// withTranches preloads the owned tranche collection
func withTranches(db *gorm.DB) *gorm.DB {
	return db.Preload("Tranches", func(db *gorm.DB) *gorm.DB {
		return db.Order("financing_tranches.sequence ASC")
	})
}

// FindByID finds a financing with its tranches
func (r *GormFinancingRepository) FindByID(ctx context.Context, id uuid.UUID) (*financing.Financing, error) {
	var m models.FinancingModel
	if err := withTranches(session(ctx, r.db)).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByReference finds a financing by its unique reference
func (r *GormFinancingRepository) FindByReference(ctx context.Context, reference string) (*financing.Financing, error) {
	var m models.FinancingModel
	if err := withTranches(session(ctx, r.db)).
		Where("reference = ?", strings.TrimSpace(reference)).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds financings matching the filter
func (r *GormFinancingRepository) FindAll(ctx context.Context, filter financing.Filter) ([]financing.Financing, error) {
	var ms []models.FinancingModel
	query := r.applyFilter(withTranches(session(ctx, r.db)).Model(&models.FinancingModel{}), filter)
	query = applyListOptions(query, filter.Filter, FinancingSortFields, "agreement_date")

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	financings := make([]financing.Financing, len(ms))
	for i := range ms {
		financings[i] = *ms[i].ToDomain()
	}
	return financings, nil
}

// Save creates or updates a financing. Tranches are owned rows wiped
// and rewritten on every save.
func (r *GormFinancingRepository) Save(ctx context.Context, f *financing.Financing) error {
	m := models.FinancingModelFromDomain(f)
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tranches").Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("financing_id = ?", m.ID).Delete(&models.TrancheModel{}).Error; err != nil {
			return err
		}
		if len(m.Tranches) > 0 {
			if err := tx.Create(&m.Tranches).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a financing and its tranches. Deletion is refused once
// money has been received, regardless of what the caller checked.
func (r *GormFinancingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		var received int64
		if err := tx.Model(&models.TrancheModel{}).
			Where("financing_id = ? AND received_amount > 0", id).
			Count(&received).Error; err != nil {
			return err
		}
		if received > 0 {
			return shared.NewDomainError("TRANCHE_RECEIVED", "Financings with received funds cannot be deleted")
		}
		if err := tx.Where("financing_id = ?", id).Delete(&models.TrancheModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.FinancingModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByReference checks if a financing reference is already taken
func (r *GormFinancingRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.FinancingModel{}).
		Where("reference = ?", strings.TrimSpace(reference)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts financings matching the filter
func (r *GormFinancingRepository) Count(ctx context.Context, filter financing.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(session(ctx, r.db).Model(&models.FinancingModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies financing filter options without pagination
func (r *GormFinancingRepository) applyFilter(query *gorm.DB, filter financing.Filter) *gorm.DB {
	if filter.DonorID != nil {
		query = query.Where("donor_id = ?", *filter.DonorID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		query = query.Where("reference LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormFinancingRepository implements financing.Repository
var _ financing.Repository = (*GormFinancingRepository)(nil)
