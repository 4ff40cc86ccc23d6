package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/advance"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAdvanceRepository implements advance.Repository using GORM
type GormAdvanceRepository struct {
	db *gorm.DB
}

// NewGormAdvanceRepository creates a new GormAdvanceRepository
func NewGormAdvanceRepository(db *gorm.DB) *GormAdvanceRepository {
	return &GormAdvanceRepository{db: db}
}

// FindByID finds an advance by its ID
func (r *GormAdvanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*advance.Advance, error) {
	var m models.AdvanceModel
	if err := session(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByNumber finds an advance by its unique number
func (r *GormAdvanceRepository) FindByNumber(ctx context.Context, number string) (*advance.Advance, error) {
	var m models.AdvanceModel
	if err := session(ctx, r.db).Where("number = ?", number).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds advances matching the filter
func (r *GormAdvanceRepository) FindAll(ctx context.Context, filter advance.Filter) ([]advance.Advance, error) {
	var ms []models.AdvanceModel
	query := r.applyFilter(session(ctx, r.db).Model(&models.AdvanceModel{}), filter)
	query = applyListOptions(query, filter.Filter, AdvanceSortFields, "issued_at")

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	advances := make([]advance.Advance, len(ms))
	for i := range ms {
		advances[i] = *ms[i].ToDomain()
	}
	return advances, nil
}

// FindOverdue finds pending advances whose due date passed the cutoff
func (r *GormAdvanceRepository) FindOverdue(ctx context.Context, cutoff time.Time) ([]advance.Advance, error) {
	var ms []models.AdvanceModel
	if err := session(ctx, r.db).
		Where("status = ? AND due_date < ?", string(advance.StatusPending), cutoff).
		Order("due_date ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	advances := make([]advance.Advance, len(ms))
	for i := range ms {
		advances[i] = *ms[i].ToDomain()
	}
	return advances, nil
}

// Save creates or updates an advance
func (r *GormAdvanceRepository) Save(ctx context.Context, adv *advance.Advance) error {
	m := models.AdvanceModelFromDomain(adv)
	return session(ctx, r.db).Save(m).Error
}

// Count counts advances matching the filter
func (r *GormAdvanceRepository) Count(ctx context.Context, filter advance.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(session(ctx, r.db).Model(&models.AdvanceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies advance filter options without pagination
func (r *GormAdvanceRepository) applyFilter(query *gorm.DB, filter advance.Filter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Beneficiary != "" {
		query = query.Where("beneficiary LIKE ?", "%"+filter.Beneficiary+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR beneficiary LIKE ? OR purpose LIKE ?", pattern, pattern, pattern)
	}
	return query
}

// Ensure GormAdvanceRepository implements advance.Repository
var _ advance.Repository = (*GormAdvanceRepository)(nil)
