package accounting

import (
	"time"

	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FiscalYear is an annual accounting period. Closing is one-directional:
// once closed, entries of the year can no longer be created, edited or
// have their validation flag toggled.
type FiscalYear struct {
	shared.BaseAggregateRoot
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Closed    bool
	ClosedAt  *time.Time
	Result    *decimal.Decimal
}

// NewFiscalYear opens a fiscal year. By convention the period is the
// calendar year, but any start <= end range within the year is accepted.
func NewFiscalYear(year int, startDate, endDate time.Time) (*FiscalYear, error) {
	if year < 1900 || year > 2200 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year out of range")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Start date must not be after end date")
	}
	fy := &FiscalYear{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Year:              year,
		StartDate:         startDate,
		EndDate:           endDate,
		Closed:            false,
	}
	fy.AddDomainEvent(NewFiscalYearOpenedEvent(fy))
	return fy, nil
}

// NewCalendarFiscalYear opens a fiscal year spanning Jan 1 to Dec 31
func NewCalendarFiscalYear(year int) (*FiscalYear, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return NewFiscalYear(year, start, end)
}

// Contains reports whether the date falls inside the year's range
func (f *FiscalYear) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(f.StartDate.Truncate(24*time.Hour)) && !d.After(f.EndDate.Truncate(24*time.Hour))
}

// CanClose checks if the fiscal year can be closed
func (f *FiscalYear) CanClose() bool {
	return !f.Closed
}

// Close closes the fiscal year, recording the computed result
// (revenue minus expense). Closing is terminal.
func (f *FiscalYear) Close(result decimal.Decimal) error {
	if f.Closed {
		return shared.NewDomainError("FISCAL_YEAR_CLOSED", "Fiscal year is already closed")
	}
	now := time.Now()
	f.Closed = true
	f.ClosedAt = &now
	f.Result = &result
	f.AddDomainEvent(NewFiscalYearClosedEvent(f))
	return nil
}
