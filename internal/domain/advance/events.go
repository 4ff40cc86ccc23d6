package advance

import (
	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AdvanceIssuedEvent is raised when an advance is issued
type AdvanceIssuedEvent struct {
	shared.BaseDomainEvent
	AdvanceID   uuid.UUID       `json:"advance_id"`
	Number      string          `json:"number"`
	Beneficiary string          `json:"beneficiary"`
	Amount      decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *AdvanceIssuedEvent) EventType() string {
	return "AdvanceIssued"
}

// NewAdvanceIssuedEvent creates a new AdvanceIssuedEvent
func NewAdvanceIssuedEvent(a *Advance) *AdvanceIssuedEvent {
	return &AdvanceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AdvanceIssued", "Advance", a.ID),
		AdvanceID:       a.ID,
		Number:          a.Number,
		Beneficiary:     a.Beneficiary,
		Amount:          a.Amount,
	}
}

// AdvanceJustifiedEvent is raised when a justification is recorded
type AdvanceJustifiedEvent struct {
	shared.BaseDomainEvent
	AdvanceID uuid.UUID       `json:"advance_id"`
	Number    string          `json:"number"`
	Status    Status          `json:"status"`
	Remaining decimal.Decimal `json:"remaining"`
}

// EventType returns the event type name
func (e *AdvanceJustifiedEvent) EventType() string {
	return "AdvanceJustified"
}

// NewAdvanceJustifiedEvent creates a new AdvanceJustifiedEvent
func NewAdvanceJustifiedEvent(a *Advance) *AdvanceJustifiedEvent {
	return &AdvanceJustifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AdvanceJustified", "Advance", a.ID),
		AdvanceID:       a.ID,
		Number:          a.Number,
		Status:          a.Status,
		Remaining:       a.Remaining(),
	}
}

// AdvanceDeductedEvent is raised when the remainder goes to payroll deduction
type AdvanceDeductedEvent struct {
	shared.BaseDomainEvent
	AdvanceID uuid.UUID       `json:"advance_id"`
	Number    string          `json:"number"`
	Remaining decimal.Decimal `json:"remaining"`
}

// EventType returns the event type name
func (e *AdvanceDeductedEvent) EventType() string {
	return "AdvanceDeducted"
}

// NewAdvanceDeductedEvent creates a new AdvanceDeductedEvent
func NewAdvanceDeductedEvent(a *Advance) *AdvanceDeductedEvent {
	return &AdvanceDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AdvanceDeducted", "Advance", a.ID),
		AdvanceID:       a.ID,
		Number:          a.Number,
		Remaining:       a.Remaining(),
	}
}
