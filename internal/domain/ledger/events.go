package ledger

import (
	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryCreatedEvent is raised when an entry is created
type EntryCreatedEvent struct {
	shared.BaseDomainEvent
	EntryID     uuid.UUID       `json:"entry_id"`
	EntryNumber string          `json:"entry_number"`
	Label       string          `json:"label"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
}

// EventType returns the event type name
func (e *EntryCreatedEvent) EventType() string {
	return "EntryCreated"
}

// NewEntryCreatedEvent creates a new EntryCreatedEvent
func NewEntryCreatedEvent(entry *Entry) *EntryCreatedEvent {
	return &EntryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("EntryCreated", "Entry", entry.ID),
		EntryID:         entry.ID,
		EntryNumber:     entry.Number,
		Label:           entry.Label,
		TotalDebit:      entry.TotalDebit(),
	}
}

// EntryValidatedEvent is raised when an entry is validated
type EntryValidatedEvent struct {
	shared.BaseDomainEvent
	EntryID     uuid.UUID `json:"entry_id"`
	EntryNumber string    `json:"entry_number"`
	ValidatedBy string    `json:"validated_by"`
}

// EventType returns the event type name
func (e *EntryValidatedEvent) EventType() string {
	return "EntryValidated"
}

// NewEntryValidatedEvent creates a new EntryValidatedEvent
func NewEntryValidatedEvent(entry *Entry) *EntryValidatedEvent {
	return &EntryValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("EntryValidated", "Entry", entry.ID),
		EntryID:         entry.ID,
		EntryNumber:     entry.Number,
		ValidatedBy:     entry.ValidatedBy,
	}
}

// EntryInvalidatedEvent is raised when an entry reverts to draft
type EntryInvalidatedEvent struct {
	shared.BaseDomainEvent
	EntryID     uuid.UUID `json:"entry_id"`
	EntryNumber string    `json:"entry_number"`
}

// EventType returns the event type name
func (e *EntryInvalidatedEvent) EventType() string {
	return "EntryInvalidated"
}

// NewEntryInvalidatedEvent creates a new EntryInvalidatedEvent
func NewEntryInvalidatedEvent(entry *Entry) *EntryInvalidatedEvent {
	return &EntryInvalidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("EntryInvalidated", "Entry", entry.ID),
		EntryID:         entry.ID,
		EntryNumber:     entry.Number,
	}
}
