package persistence

import (
	"context"
	"errors"

	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceRepository implements SequenceRepository over a counter
// table. The counter row is locked for update, so the repository must be
// called inside the transaction that persists the numbered record:
// concurrent writers block on the lock and never obtain the same value.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next hands out the next value of the (scope, year) counter
func (r *GormSequenceRepository) Next(ctx context.Context, scope string, year int) (int, error) {
	db := session(ctx, r.db)

	var seq models.SequenceModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("scope = ? AND year = ?", scope, year).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.SequenceModel{Scope: scope, Year: year, Value: 1}
		if err := db.Create(&seq).Error; err != nil {
			return 0, err
		}
		return seq.Value, nil
	}
	if err != nil {
		return 0, err
	}

	seq.Value++
	if err := db.Model(&models.SequenceModel{}).
		Where("scope = ? AND year = ?", scope, year).
		Update("value", seq.Value).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ ledger.SequenceRepository = (*GormSequenceRepository)(nil)
