package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// Action names the kind of change being recorded
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionValidate Action = "validate"
	ActionClose    Action = "close"
)

// Record is one append-only line of the audit trail. Records are
// written in the same transaction as the change they describe; a
// failed audit write fails the whole operation.
type Record struct {
	ID        uuid.UUID
	Table     string
	RecordID  uuid.UUID
	Action    Action
	OldValues json.RawMessage
	NewValues json.RawMessage
	Actor     string
	Timestamp time.Time
}

// NewRecord builds an audit record. Old and new values are serialized
// snapshots of the entity before and after the change.
func NewRecord(table string, recordID uuid.UUID, action Action, oldValues, newValues any, actor string) (*Record, error) {
	if table == "" {
		return nil, shared.NewDomainError("INVALID_AUDIT", "Audit table name is required")
	}
	var oldJSON, newJSON json.RawMessage
	if oldValues != nil {
		b, err := json.Marshal(oldValues)
		if err != nil {
			return nil, err
		}
		oldJSON = b
	}
	if newValues != nil {
		b, err := json.Marshal(newValues)
		if err != nil {
			return nil, err
		}
		newJSON = b
	}
	return &Record{
		ID:        uuid.New(),
		Table:     table,
		RecordID:  recordID,
		Action:    action,
		OldValues: oldJSON,
		NewValues: newJSON,
		Actor:     actor,
		Timestamp: time.Now(),
	}, nil
}

// Filter defines filtering options for audit queries
type Filter struct {
	shared.Filter
	Table    string
	RecordID *uuid.UUID
	Actor    string
}

// Repository defines the interface for the append-only audit trail.
// There is no update or delete: compliance forbids rewriting history.
type Repository interface {
	Append(ctx context.Context, record *Record) error
	FindAll(ctx context.Context, filter Filter) ([]Record, error)
	FindByRecord(ctx context.Context, table string, recordID uuid.UUID) ([]Record, error)
}

// Trail is a convenience helper for services: it builds and appends a
// record, propagating any failure to the caller's transaction.
type Trail struct {
	repo Repository
}

// NewTrail creates an audit trail over the repository
func NewTrail(repo Repository) *Trail {
	return &Trail{repo: repo}
}

// Write appends one audit record inside the caller's transaction
func (t *Trail) Write(ctx context.Context, table string, recordID uuid.UUID, action Action, oldValues, newValues any, actor string) error {
	record, err := NewRecord(table, recordID, action, oldValues, newValues, actor)
	if err != nil {
		return err
	}
	return t.repo.Append(ctx, record)
}
