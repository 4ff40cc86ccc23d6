package accounting

import (
	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountCreatedEvent is raised when a chart-of-accounts node is created
type AccountCreatedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID    `json:"account_id"`
	Number    string       `json:"number"`
	Class     AccountClass `json:"class"`
}

// EventType returns the event type name
func (e *AccountCreatedEvent) EventType() string {
	return "AccountCreated"
}

// NewAccountCreatedEvent creates a new AccountCreatedEvent
func NewAccountCreatedEvent(account *Account) *AccountCreatedEvent {
	return &AccountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AccountCreated", "Account", account.ID),
		AccountID:       account.ID,
		Number:          account.Number,
		Class:           account.Class,
	}
}

// FiscalYearOpenedEvent is raised when a fiscal year is opened
type FiscalYearOpenedEvent struct {
	shared.BaseDomainEvent
	FiscalYearID uuid.UUID `json:"fiscal_year_id"`
	Year         int       `json:"year"`
}

// EventType returns the event type name
func (e *FiscalYearOpenedEvent) EventType() string {
	return "FiscalYearOpened"
}

// NewFiscalYearOpenedEvent creates a new FiscalYearOpenedEvent
func NewFiscalYearOpenedEvent(fy *FiscalYear) *FiscalYearOpenedEvent {
	return &FiscalYearOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FiscalYearOpened", "FiscalYear", fy.ID),
		FiscalYearID:    fy.ID,
		Year:            fy.Year,
	}
}

// FiscalYearClosedEvent is raised when a fiscal year is closed
type FiscalYearClosedEvent struct {
	shared.BaseDomainEvent
	FiscalYearID uuid.UUID       `json:"fiscal_year_id"`
	Year         int             `json:"year"`
	Result       decimal.Decimal `json:"result"`
}

// EventType returns the event type name
func (e *FiscalYearClosedEvent) EventType() string {
	return "FiscalYearClosed"
}

// NewFiscalYearClosedEvent creates a new FiscalYearClosedEvent
func NewFiscalYearClosedEvent(fy *FiscalYear) *FiscalYearClosedEvent {
	var result decimal.Decimal
	if fy.Result != nil {
		result = *fy.Result
	}
	return &FiscalYearClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FiscalYearClosed", "FiscalYear", fy.ID),
		FiscalYearID:    fy.ID,
		Year:            fy.Year,
		Result:          result,
	}
}
