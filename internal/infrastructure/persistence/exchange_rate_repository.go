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

// GormExchangeRateRepository implements ExchangeRateRepository using GORM
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// FindByID finds a monthly rate by its ID
func (r *GormExchangeRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.ExchangeRate, error) {
	var m models.ExchangeRateModel
	if err := session(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByPeriod finds the rate for (currency, month, year). Returns nil
// without error when no rate was entered for the slot.
func (r *GormExchangeRateRepository) FindByPeriod(ctx context.Context, currencyCode string, month, year int) (*accounting.ExchangeRate, error) {
	var m models.ExchangeRateModel
	err := session(ctx, r.db).
		Where("currency_code = ? AND month = ? AND year = ?",
			strings.ToUpper(strings.TrimSpace(currencyCode)), month, year).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCurrency lists all monthly rates of one currency, newest first
func (r *GormExchangeRateRepository) FindByCurrency(ctx context.Context, currencyCode string) ([]accounting.ExchangeRate, error) {
	var ms []models.ExchangeRateModel
	if err := session(ctx, r.db).
		Where("currency_code = ?", strings.ToUpper(strings.TrimSpace(currencyCode))).
		Order("year DESC, month DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	rates := make([]accounting.ExchangeRate, len(ms))
	for i := range ms {
		rates[i] = *ms[i].ToDomain()
	}
	return rates, nil
}

// Save creates or updates a monthly rate
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate *accounting.ExchangeRate) error {
	m := models.ExchangeRateModelFromDomain(rate)
	return session(ctx, r.db).Save(m).Error
}

// Delete removes a monthly rate
func (r *GormExchangeRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.ExchangeRateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormExchangeRateRepository implements ExchangeRateRepository
var _ accounting.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)
