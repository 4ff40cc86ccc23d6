package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRepository implements the append-only audit.Repository using
// GORM. There is no update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts one audit record
func (r *GormAuditRepository) Append(ctx context.Context, record *audit.Record) error {
	m := models.AuditRecordModelFromDomain(record)
	return session(ctx, r.db).Create(m).Error
}

// FindAll finds audit records matching the filter, newest first
func (r *GormAuditRepository) FindAll(ctx context.Context, filter audit.Filter) ([]audit.Record, error) {
	var ms []models.AuditRecordModel
	query := session(ctx, r.db).Model(&models.AuditRecordModel{})
	if filter.Table != "" {
		query = query.Where("table_name = ?", filter.Table)
	}
	if filter.RecordID != nil {
		query = query.Where("record_id = ?", *filter.RecordID)
	}
	if filter.Actor != "" {
		query = query.Where("actor = ?", filter.Actor)
	}
	query = applyListOptions(query, filter.Filter, AuditSortFields, "timestamp")

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(ms), nil
}

// FindByRecord returns the full history of one record, oldest first
func (r *GormAuditRepository) FindByRecord(ctx context.Context, table string, recordID uuid.UUID) ([]audit.Record, error) {
	var ms []models.AuditRecordModel
	if err := session(ctx, r.db).
		Where("table_name = ? AND record_id = ?", table, recordID).
		Order("timestamp ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(ms), nil
}

// toDomainRecords converts a model slice to domain records
func toDomainRecords(ms []models.AuditRecordModel) []audit.Record {
	records := make([]audit.Record, len(ms))
	for i := range ms {
		records[i] = *ms[i].ToDomain()
	}
	return records
}

// Ensure GormAuditRepository implements audit.Repository
var _ audit.Repository = (*GormAuditRepository)(nil)
