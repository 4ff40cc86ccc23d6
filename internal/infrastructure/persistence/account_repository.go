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

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Account, error) {
	var m models.AccountModel
	if err := session(ctx, r.db).Preload("Treasury").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByNumber finds an account by its unique number
func (r *GormAccountRepository) FindByNumber(ctx context.Context, number string) (*accounting.Account, error) {
	var m models.AccountModel
	if err := session(ctx, r.db).Preload("Treasury").
		Where("number = ?", strings.TrimSpace(number)).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds accounts matching the filter
func (r *GormAccountRepository) FindAll(ctx context.Context, filter accounting.AccountFilter) ([]accounting.Account, error) {
	var ms []models.AccountModel
	query := r.applyFilter(session(ctx, r.db).Model(&models.AccountModel{}).Preload("Treasury"), filter)
	query = applyListOptions(query, filter.Filter, AccountSortFields, "number")

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	accounts := make([]accounting.Account, len(ms))
	for i := range ms {
		accounts[i] = *ms[i].ToDomain()
	}
	return accounts, nil
}

// FindTreasuryAccounts finds active class-5 accounts with treasury details
func (r *GormAccountRepository) FindTreasuryAccounts(ctx context.Context) ([]accounting.Account, error) {
	var ms []models.AccountModel
	if err := session(ctx, r.db).Preload("Treasury").
		Joins("JOIN treasury_details ON treasury_details.account_id = accounts.id").
		Where("accounts.class = ? AND accounts.active = ?", int(accounting.ClassTreasury), true).
		Order("accounts.number ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	accounts := make([]accounting.Account, len(ms))
	for i := range ms {
		accounts[i] = *ms[i].ToDomain()
	}
	return accounts, nil
}

// Save creates or updates an account. The treasury detail row is
// rewritten alongside the account.
func (r *GormAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	m := models.AccountModelFromDomain(account)
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Treasury").Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", m.ID).Delete(&models.TreasuryDetailModel{}).Error; err != nil {
			return err
		}
		if m.Treasury != nil {
			if err := tx.Create(m.Treasury).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ExistsByNumber checks if an account number is already taken
func (r *GormAccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.AccountModel{}).
		Where("number = ?", strings.TrimSpace(number)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts accounts matching the filter
func (r *GormAccountRepository) Count(ctx context.Context, filter accounting.AccountFilter) (int64, error) {
	var count int64
	query := r.applyFilter(session(ctx, r.db).Model(&models.AccountModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies account filter options without pagination
func (r *GormAccountRepository) applyFilter(query *gorm.DB, filter accounting.AccountFilter) *gorm.DB {
	if filter.Class != nil {
		query = query.Where("class = ?", int(*filter.Class))
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.NumberPrefix != "" {
		query = query.Where("number LIKE ?", filter.NumberPrefix+"%")
	}
	if filter.TreasuryOnly {
		query = query.Where("class = ?", int(accounting.ClassTreasury))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR label LIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormAccountRepository implements AccountRepository
var _ accounting.AccountRepository = (*GormAccountRepository)(nil)
