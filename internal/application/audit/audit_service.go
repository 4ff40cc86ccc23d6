package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/audit"
)

// AuditService exposes the append-only audit trail for review
type AuditService struct {
	repo audit.Repository
}

// NewAuditService creates a new AuditService
func NewAuditService(repo audit.Repository) *AuditService {
	return &AuditService{repo: repo}
}

// RecordResponse represents an audit record in API responses
type RecordResponse struct {
	ID        uuid.UUID       `json:"id"`
	Table     string          `json:"table"`
	RecordID  uuid.UUID       `json:"record_id"`
	Action    audit.Action    `json:"action"`
	OldValues json.RawMessage `json:"old_values,omitempty"`
	NewValues json.RawMessage `json:"new_values,omitempty"`
	Actor     string          `json:"actor"`
	Timestamp time.Time       `json:"timestamp"`
}

// ListRecords returns audit records matching the filter, newest first
func (s *AuditService) ListRecords(ctx context.Context, filter audit.Filter) ([]RecordResponse, error) {
	records, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = toRecordResponse(&records[i])
	}
	return responses, nil
}

// RecordHistory returns the full history of one record
func (s *AuditService) RecordHistory(ctx context.Context, table string, recordID uuid.UUID) ([]RecordResponse, error) {
	records, err := s.repo.FindByRecord(ctx, table, recordID)
	if err != nil {
		return nil, err
	}
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = toRecordResponse(&records[i])
	}
	return responses, nil
}

func toRecordResponse(r *audit.Record) RecordResponse {
	return RecordResponse{
		ID:        r.ID,
		Table:     r.Table,
		RecordID:  r.RecordID,
		Action:    r.Action,
		OldValues: r.OldValues,
		NewValues: r.NewValues,
		Actor:     r.Actor,
		Timestamp: r.Timestamp,
	}
}
