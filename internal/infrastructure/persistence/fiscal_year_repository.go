package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFiscalYearRepository implements FiscalYearRepository using GORM
type GormFiscalYearRepository struct {
	db *gorm.DB
}

// NewGormFiscalYearRepository creates a new GormFiscalYearRepository
func NewGormFiscalYearRepository(db *gorm.DB) *GormFiscalYearRepository {
	return &GormFiscalYearRepository{db: db}
}

// FindByID finds a fiscal year by its ID
func (r *GormFiscalYearRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.FiscalYear, error) {
	var m models.FiscalYearModel
	if err := session(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByYear finds a fiscal year by its calendar year
func (r *GormFiscalYearRepository) FindByYear(ctx context.Context, year int) (*accounting.FiscalYear, error) {
	var m models.FiscalYearModel
	if err := session(ctx, r.db).Where("year = ?", year).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindOpen returns the most recent open fiscal year, or nil without
// error when every year is closed.
func (r *GormFiscalYearRepository) FindOpen(ctx context.Context) (*accounting.FiscalYear, error) {
	var m models.FiscalYearModel
	err := session(ctx, r.db).
		Where("closed = ?", false).
		Order("year DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists all fiscal years, newest first
func (r *GormFiscalYearRepository) FindAll(ctx context.Context) ([]accounting.FiscalYear, error) {
	var ms []models.FiscalYearModel
	if err := session(ctx, r.db).Order("year DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	years := make([]accounting.FiscalYear, len(ms))
	for i := range ms {
		years[i] = *ms[i].ToDomain()
	}
	return years, nil
}

// Save creates or updates a fiscal year
func (r *GormFiscalYearRepository) Save(ctx context.Context, fiscalYear *accounting.FiscalYear) error {
	m := models.FiscalYearModelFromDomain(fiscalYear)
	return session(ctx, r.db).Save(m).Error
}

// ExistsByYear checks if a fiscal year exists for the calendar year
func (r *GormFiscalYearRepository) ExistsByYear(ctx context.Context, year int) (bool, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.FiscalYearModel{}).
		Where("year = ?", year).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormFiscalYearRepository implements FiscalYearRepository
var _ accounting.FiscalYearRepository = (*GormFiscalYearRepository)(nil)
