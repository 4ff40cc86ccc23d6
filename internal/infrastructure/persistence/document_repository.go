package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a supporting document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.SupportingDocument, error) {
	var m models.SupportingDocumentModel
	if err := session(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByEntry lists the documents attached to an entry
func (r *GormDocumentRepository) FindByEntry(ctx context.Context, entryID uuid.UUID) ([]ledger.SupportingDocument, error) {
	var ms []models.SupportingDocumentModel
	if err := session(ctx, r.db).
		Where("entry_id = ?", entryID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	docs := make([]ledger.SupportingDocument, len(ms))
	for i := range ms {
		docs[i] = *ms[i].ToDomain()
	}
	return docs, nil
}

// Save creates or updates a supporting document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *ledger.SupportingDocument) error {
	m := models.SupportingDocumentModelFromDomain(doc)
	return session(ctx, r.db).Save(m).Error
}

// Delete removes a supporting document
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.SupportingDocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ ledger.DocumentRepository = (*GormDocumentRepository)(nil)
