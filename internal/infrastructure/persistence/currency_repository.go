package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCurrencyRepository implements CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByID finds a currency by its ID
func (r *GormCurrencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Currency, error) {
	var m models.CurrencyModel
	if err := session(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCode finds a currency by its ISO code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code string) (*accounting.Currency, error) {
	var m models.CurrencyModel
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

// FindAll lists all currencies ordered by code
func (r *GormCurrencyRepository) FindAll(ctx context.Context) ([]accounting.Currency, error) {
	var ms []models.CurrencyModel
	if err := session(ctx, r.db).Order("code ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	currencies := make([]accounting.Currency, len(ms))
	for i := range ms {
		currencies[i] = *ms[i].ToDomain()
	}
	return currencies, nil
}

// Save creates or updates a currency
func (r *GormCurrencyRepository) Save(ctx context.Context, currency *accounting.Currency) error {
	m := models.CurrencyModelFromDomain(currency)
	return session(ctx, r.db).Save(m).Error
}

// Ensure GormCurrencyRepository implements CurrencyRepository
var _ accounting.CurrencyRepository = (*GormCurrencyRepository)(nil)
