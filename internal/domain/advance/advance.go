package advance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DueDays is the justification delay granted at issue time
const DueDays = 7

// FormatAdvanceNumber renders an advance number, e.g. AV20250012
func FormatAdvanceNumber(year, sequence int) string {
	return fmt.Sprintf("AV%d%04d", year, sequence)
}

// Status represents the lifecycle state of a cash advance
type Status string

const (
	StatusPending   Status = "pending"
	StatusJustified Status = "justified"
	StatusSettled   Status = "settled"
	StatusDeducted  Status = "deducted"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusJustified, StatusSettled, StatusDeducted:
		return true
	}
	return false
}

// IsTerminal checks if the status is a terminal state
func (s Status) IsTerminal() bool {
	return s == StatusSettled || s == StatusDeducted
}

// Advance is a cash advance issued to a staff member, to be justified
// with receipts within DueDays.
type Advance struct {
	shared.BaseAggregateRoot
	Number               string
	IssuedAt             time.Time
	Beneficiary          string
	Amount               decimal.Decimal
	Purpose              string
	ProjectID            *uuid.UUID
	Status               Status
	DueDate              time.Time
	JustifiedAmount      decimal.Decimal
	ReimbursedAmount     decimal.Decimal
	Notes                string
	DisbursementEntryID  *uuid.UUID
	JustificationEntryID *uuid.UUID
}

// NewAdvance issues an advance. The due date is the issue date plus
// DueDays.
func NewAdvance(number, beneficiary string, amount decimal.Decimal, purpose string, projectID *uuid.UUID) (*Advance, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Advance number is required")
	}
	if strings.TrimSpace(beneficiary) == "" {
		return nil, shared.NewDomainError("INVALID_BENEFICIARY", "Beneficiary name is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance amount must be positive")
	}
	now := time.Now()
	adv := &Advance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		IssuedAt:          now,
		Beneficiary:       beneficiary,
		Amount:            amount,
		Purpose:           purpose,
		ProjectID:         projectID,
		Status:            StatusPending,
		DueDate:           now.AddDate(0, 0, DueDays),
		JustifiedAmount:   decimal.Zero,
		ReimbursedAmount:  decimal.Zero,
	}
	adv.AddDomainEvent(NewAdvanceIssuedEvent(adv))
	return adv, nil
}

// Remaining is the amount still to be accounted for
func (a *Advance) Remaining() decimal.Decimal {
	return a.Amount.Sub(a.JustifiedAmount).Sub(a.ReimbursedAmount)
}

// IsOverdue is recomputed on read, never stored
func (a *Advance) IsOverdue() bool {
	return a.Status == StatusPending && time.Now().After(a.DueDate)
}

// CanJustify checks if the advance accepts a justification
func (a *Advance) CanJustify() bool {
	return a.Status == StatusPending || a.Status == StatusJustified
}

// Justify records justified and reimbursed amounts. The advance settles
// when nothing remains, otherwise it stays partially justified.
func (a *Advance) Justify(justifiedAmount, reimbursedAmount decimal.Decimal, notes string) error {
	if !a.CanJustify() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Advance in status %s cannot be justified", a.Status))
	}
	if justifiedAmount.IsNegative() || reimbursedAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Justified and reimbursed amounts must not be negative")
	}
	a.JustifiedAmount = justifiedAmount
	a.ReimbursedAmount = reimbursedAmount
	if notes != "" {
		a.Notes = notes
	}
	if a.Remaining().LessThanOrEqual(decimal.Zero) {
		a.Status = StatusSettled
	} else {
		a.Status = StatusJustified
	}
	a.AddDomainEvent(NewAdvanceJustifiedEvent(a))
	return nil
}

// CanDeduct checks if the remainder can still be deducted from payroll
func (a *Advance) CanDeduct() bool {
	return !a.Status.IsTerminal()
}

// Deduct marks the unjustified remainder as deducted from payroll.
// Terminal, director-level action.
func (a *Advance) Deduct() error {
	if !a.CanDeduct() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Advance in status %s cannot be deducted", a.Status))
	}
	a.Status = StatusDeducted
	a.AddDomainEvent(NewAdvanceDeductedEvent(a))
	return nil
}

// LinkDisbursementEntry attaches the ledger entry that paid the advance out
func (a *Advance) LinkDisbursementEntry(entryID uuid.UUID) {
	a.DisbursementEntryID = &entryID
}

// LinkJustificationEntry attaches the ledger entry recording the receipts
func (a *Advance) LinkJustificationEntry(entryID uuid.UUID) {
	a.JustificationEntryID = &entryID
}
