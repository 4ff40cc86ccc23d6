package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDonorRepository implements DonorRepository using GORM
type GormDonorRepository struct {
	db *gorm.DB
}

// NewGormDonorRepository creates a new GormDonorRepository
func NewGormDonorRepository(db *gorm.DB) *GormDonorRepository {
	return &GormDonorRepository{db: db}
}

// FindByID finds a donor by its ID
func (r *GormDonorRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Donor, error) {
	var m models.DonorModel
	if err := session(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCode finds a donor by its unique code
func (r *GormDonorRepository) FindByCode(ctx context.Context, code string) (*budget.Donor, error) {
	var m models.DonorModel
	if err := session(ctx, r.db).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists all donors ordered by code
func (r *GormDonorRepository) FindAll(ctx context.Context) ([]budget.Donor, error) {
	var ms []models.DonorModel
	if err := session(ctx, r.db).Order("code ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	donors := make([]budget.Donor, len(ms))
	for i := range ms {
		donors[i] = *ms[i].ToDomain()
	}
	return donors, nil
}

// Save creates or updates a donor
func (r *GormDonorRepository) Save(ctx context.Context, donor *budget.Donor) error {
	m := models.DonorModelFromDomain(donor)
	return session(ctx, r.db).Save(m).Error
}

// ExistsByCode checks if a donor code is already taken
func (r *GormDonorRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.DonorModel{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormDonorRepository implements DonorRepository
var _ budget.DonorRepository = (*GormDonorRepository)(nil)
