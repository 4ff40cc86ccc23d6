package financing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AffectationType constrains what a financing may be spent on
type AffectationType string

const (
	AffectationFree    AffectationType = "libre"
	AffectationProject AffectationType = "projet"
	AffectationUsage   AffectationType = "usage"
)

// IsValid checks if the affectation type is valid
func (t AffectationType) IsValid() bool {
	switch t {
	case AffectationFree, AffectationProject, AffectationUsage:
		return true
	}
	return false
}

// Status represents the lifecycle state of a financing
type Status string

const (
	StatusActive    Status = "actif"
	StatusClosed    Status = "cloture"
	StatusCancelled Status = "annule"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// TrancheStatus represents the reception state of one installment
type TrancheStatus string

const (
	TrancheExpected TrancheStatus = "attendu"
	TrancheReceived TrancheStatus = "recu"
	TranchePartial  TrancheStatus = "partiel"
	TrancheOverdue  TrancheStatus = "retard"
)

// Tranche is one scheduled installment of a donor commitment
type Tranche struct {
	ID             uuid.UUID
	FinancingID    uuid.UUID
	Sequence       int
	PlannedAmount  decimal.Decimal
	PlannedDate    time.Time
	ReceivedAmount decimal.Decimal
	ReceivedDate   *time.Time
	Status         TrancheStatus
}

// EffectiveStatus derives retard for expected installments whose
// planned date has passed without full reception.
func (t Tranche) EffectiveStatus(now time.Time) TrancheStatus {
	if t.Status == TrancheReceived {
		return TrancheReceived
	}
	if t.PlannedDate.Before(now) && t.ReceivedAmount.LessThan(t.PlannedAmount) {
		return TrancheOverdue
	}
	return t.Status
}

// Financing is a donor commitment with its scheduled tranches
// (cascade-delete, but deletion is refused once money has moved).
type Financing struct {
	shared.BaseAggregateRoot
	Reference     string
	DonorID       uuid.UUID
	Affectation   AffectationType
	ProjectID     *uuid.UUID
	Amount        decimal.Decimal
	Currency      valueobject.Currency
	AgreementDate time.Time
	EndDate       *time.Time
	Status        Status
	Tranches      []Tranche
}

// NewFinancing records a donor commitment
func NewFinancing(reference string, donorID uuid.UUID, affectation AffectationType, projectID *uuid.UUID, amount decimal.Decimal, currency valueobject.Currency, agreementDate time.Time, endDate *time.Time) (*Financing, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Financing reference is required")
	}
	if donorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DONOR", "Financing donor is required")
	}
	if !affectation.IsValid() {
		return nil, shared.NewDomainError("INVALID_AFFECTATION", "Unknown affectation type")
	}
	if affectation == AffectationProject && projectID == nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project-tied financing needs a project")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Financing amount must be positive")
	}
	if agreementDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Agreement date is required")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Financing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         reference,
		DonorID:           donorID,
		Affectation:       affectation,
		ProjectID:         projectID,
		Amount:            amount,
		Currency:          currency,
		AgreementDate:     agreementDate,
		EndDate:           endDate,
		Status:            StatusActive,
	}, nil
}

// AddTranche appends an installment with the next sequence number
func (f *Financing) AddTranche(plannedAmount decimal.Decimal, plannedDate time.Time) (*Tranche, error) {
	if f.Status != StatusActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Tranches can only be added to active financings")
	}
	if !plannedAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Planned amount must be positive")
	}
	if plannedDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Planned date is required")
	}
	tranche := Tranche{
		ID:             uuid.New(),
		FinancingID:    f.ID,
		Sequence:       len(f.Tranches) + 1,
		PlannedAmount:  plannedAmount,
		PlannedDate:    plannedDate,
		ReceivedAmount: decimal.Zero,
		Status:         TrancheExpected,
	}
	f.Tranches = append(f.Tranches, tranche)
	return &f.Tranches[len(f.Tranches)-1], nil
}

// ReceiveTranche records the reception of an installment. A missing
// amount defaults to the planned amount; a missing date to today.
func (f *Financing) ReceiveTranche(trancheID uuid.UUID, receivedAmount *decimal.Decimal, receivedDate *time.Time) (*Tranche, error) {
	for i := range f.Tranches {
		tranche := &f.Tranches[i]
		if tranche.ID != trancheID {
			continue
		}
		amount := tranche.PlannedAmount
		if receivedAmount != nil {
			amount = *receivedAmount
		}
		if !amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Received amount must be positive")
		}
		date := time.Now()
		if receivedDate != nil {
			date = *receivedDate
		}
		tranche.ReceivedAmount = amount
		tranche.ReceivedDate = &date
		if amount.GreaterThanOrEqual(tranche.PlannedAmount) {
			tranche.Status = TrancheReceived
		} else {
			tranche.Status = TranchePartial
		}
		return tranche, nil
	}
	return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Tranche %s not found", trancheID))
}

// TotalReceived sums the received amounts of all tranches
func (f *Financing) TotalReceived() decimal.Decimal {
	total := decimal.Zero
	for _, t := range f.Tranches {
		total = total.Add(t.ReceivedAmount)
	}
	return total
}

// TotalExpected is the committed amount still outstanding
func (f *Financing) TotalExpected() decimal.Decimal {
	return f.Amount.Sub(f.TotalReceived())
}

// PercentReceived is the received share of the commitment in percent
func (f *Financing) PercentReceived() decimal.Decimal {
	if f.Amount.IsZero() {
		return decimal.Zero
	}
	return f.TotalReceived().Mul(decimal.NewFromInt(100)).Div(f.Amount).Round(2)
}

// HasReceivedFunds reports whether any money has moved on this
// financing. Financial history must not be erased once it has.
func (f *Financing) HasReceivedFunds() bool {
	for _, t := range f.Tranches {
		if t.ReceivedAmount.IsPositive() {
			return true
		}
	}
	return false
}

// CanDelete checks if the financing may be deleted
func (f *Financing) CanDelete() bool {
	return !f.HasReceivedFunds()
}

// RemoveTranche deletes an installment that has received nothing
func (f *Financing) RemoveTranche(trancheID uuid.UUID) error {
	for i, t := range f.Tranches {
		if t.ID != trancheID {
			continue
		}
		if t.ReceivedAmount.IsPositive() {
			return shared.NewDomainError("TRANCHE_RECEIVED", "Tranches with received funds cannot be deleted")
		}
		f.Tranches = append(f.Tranches[:i], f.Tranches[i+1:]...)
		for j := range f.Tranches {
			f.Tranches[j].Sequence = j + 1
		}
		return nil
	}
	return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Tranche %s not found", trancheID))
}

// CloseFinancing closes a fully processed financing
func (f *Financing) CloseFinancing() error {
	if f.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active financings can be closed")
	}
	f.Status = StatusClosed
	return nil
}

// Cancel voids a financing on which no money has moved
func (f *Financing) Cancel() error {
	if f.HasReceivedFunds() {
		return shared.NewDomainError("TRANCHE_RECEIVED", "Financings with received funds cannot be cancelled")
	}
	if f.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active financings can be cancelled")
	}
	f.Status = StatusCancelled
	return nil
}
