package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBudgetCategoryRepository implements BudgetCategoryRepository using GORM
type GormBudgetCategoryRepository struct {
	db *gorm.DB
}

// NewGormBudgetCategoryRepository creates a new GormBudgetCategoryRepository
func NewGormBudgetCategoryRepository(db *gorm.DB) *GormBudgetCategoryRepository {
	return &GormBudgetCategoryRepository{db: db}
}

// FindByID finds a budget category by its ID
func (r *GormBudgetCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.BudgetCategory, error) {
	var m models.BudgetCategoryModel
	if err := session(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists all budget categories in display order
func (r *GormBudgetCategoryRepository) FindAll(ctx context.Context) ([]budget.BudgetCategory, error) {
	var ms []models.BudgetCategoryModel
	if err := session(ctx, r.db).Order("sort_order ASC, code ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	categories := make([]budget.BudgetCategory, len(ms))
	for i := range ms {
		categories[i] = *ms[i].ToDomain()
	}
	return categories, nil
}

// Save creates or updates a budget category
func (r *GormBudgetCategoryRepository) Save(ctx context.Context, category *budget.BudgetCategory) error {
	m := models.BudgetCategoryModelFromDomain(category)
	return session(ctx, r.db).Save(m).Error
}

// Ensure GormBudgetCategoryRepository implements BudgetCategoryRepository
var _ budget.BudgetCategoryRepository = (*GormBudgetCategoryRepository)(nil)
