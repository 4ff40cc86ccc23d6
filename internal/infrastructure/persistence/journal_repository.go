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

// GormJournalRepository implements JournalRepository using GORM
type GormJournalRepository struct {
	db *gorm.DB
}

// NewGormJournalRepository creates a new GormJournalRepository
func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// FindByID finds a journal by its ID
func (r *GormJournalRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Journal, error) {
	var m models.JournalModel
	if err := session(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCode finds a journal by its unique code
func (r *GormJournalRepository) FindByCode(ctx context.Context, code string) (*accounting.Journal, error) {
	var m models.JournalModel
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

// FindAll lists all journals ordered by code
func (r *GormJournalRepository) FindAll(ctx context.Context) ([]accounting.Journal, error) {
	var ms []models.JournalModel
	if err := session(ctx, r.db).Order("code ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	journals := make([]accounting.Journal, len(ms))
	for i := range ms {
		journals[i] = *ms[i].ToDomain()
	}
	return journals, nil
}

// Save creates or updates a journal
func (r *GormJournalRepository) Save(ctx context.Context, journal *accounting.Journal) error {
	m := models.JournalModelFromDomain(journal)
	return session(ctx, r.db).Save(m).Error
}

// ExistsByCode checks if a journal code is already taken
func (r *GormJournalRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.JournalModel{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a journal. Deletion is refused while entries still
// reference it.
func (r *GormJournalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := session(ctx, r.db)
	var referenced int64
	if err := db.Model(&models.EntryModel{}).Where("journal_id = ?", id).Count(&referenced).Error; err != nil {
		return err
	}
	if referenced > 0 {
		return shared.NewDomainError("JOURNAL_IN_USE", "Journal is referenced by existing entries")
	}
	result := db.Delete(&models.JournalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormJournalRepository implements JournalRepository
var _ accounting.JournalRepository = (*GormJournalRepository)(nil)
