package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FiscalYearService manages the fiscal year lifecycle
type FiscalYearService struct {
	fiscalYearRepo accounting.FiscalYearRepository
	entryRepo      ledger.EntryRepository
	trail          *audit.Trail
	tx             shared.TxManager
	logger         *zap.Logger
}

// NewFiscalYearService creates a new FiscalYearService
func NewFiscalYearService(
	fiscalYearRepo accounting.FiscalYearRepository,
	entryRepo ledger.EntryRepository,
	trail *audit.Trail,
	tx shared.TxManager,
	logger *zap.Logger,
) *FiscalYearService {
	return &FiscalYearService{
		fiscalYearRepo: fiscalYearRepo,
		entryRepo:      entryRepo,
		trail:          trail,
		tx:             tx,
		logger:         logger,
	}
}

// FiscalYearResponse represents a fiscal year in API responses
type FiscalYearResponse struct {
	ID       uuid.UUID        `json:"id"`
	Year     int              `json:"year"`
	Start    time.Time        `json:"start_date"`
	End      time.Time        `json:"end_date"`
	Closed   bool             `json:"closed"`
	ClosedAt *time.Time       `json:"closed_at,omitempty"`
	Result   *decimal.Decimal `json:"result,omitempty"`
}

// CreateFiscalYearRequest represents a request to open a fiscal year
type CreateFiscalYearRequest struct {
	Year      int        `json:"year" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Actor     string     `json:"-"`
}

// CloseFiscalYearRequest represents a request to close a fiscal year
type CloseFiscalYearRequest struct {
	Force bool   `json:"force"`
	Actor string `json:"-"`
}

// CloseFiscalYearResponse reports the outcome of a closure
type CloseFiscalYearResponse struct {
	FiscalYear         FiscalYearResponse `json:"fiscal_year"`
	Result             decimal.Decimal    `json:"result"`
	UnvalidatedIgnored int64              `json:"unvalidated_ignored"`
}

// CreateFiscalYear opens a fiscal year. Years are unique; the period
// defaults to the calendar year.
func (s *FiscalYearService) CreateFiscalYear(ctx context.Context, req CreateFiscalYearRequest) (*FiscalYearResponse, error) {
	exists, err := s.fiscalYearRepo.ExistsByYear(ctx, req.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Fiscal year %d already exists", req.Year))
	}

	var fy *accounting.FiscalYear
	if req.StartDate != nil && req.EndDate != nil {
		fy, err = accounting.NewFiscalYear(req.Year, *req.StartDate, *req.EndDate)
	} else {
		fy, err = accounting.NewCalendarFiscalYear(req.Year)
	}
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.fiscalYearRepo.Save(ctx, fy); err != nil {
			return err
		}
		return s.trail.Write(ctx, "fiscal_years", fy.ID, audit.ActionCreate, nil, fy, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toFiscalYearResponse(fy), nil
}

// CloseFiscalYear closes a year. With unvalidated entries present the
// closure aborts unless forced, in which case the ignored count is
// logged and reported. The year result (revenue minus expense over
// validated entries) is computed and recorded at closure.
func (s *FiscalYearService) CloseFiscalYear(ctx context.Context, id uuid.UUID, req CloseFiscalYearRequest) (*CloseFiscalYearResponse, error) {
	fy, err := s.fiscalYearRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fy.Closed {
		return nil, shared.NewDomainError("FISCAL_YEAR_CLOSED", "Fiscal year is already closed")
	}

	unvalidated, err := s.entryRepo.CountUnvalidatedByFiscalYear(ctx, fy.ID)
	if err != nil {
		return nil, err
	}
	if unvalidated > 0 && !req.Force {
		return nil, shared.NewDomainError("UNVALIDATED_ENTRIES",
			fmt.Sprintf("%d non-validated entries prevent closure", unvalidated))
	}

	result, err := s.computeResult(ctx, fy.ID)
	if err != nil {
		return nil, err
	}
	before := *fy
	if err := fy.Close(result); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.fiscalYearRepo.Save(ctx, fy); err != nil {
			return err
		}
		return s.trail.Write(ctx, "fiscal_years", fy.ID, audit.ActionClose, &before, fy, req.Actor)
	})
	if err != nil {
		return nil, err
	}

	if unvalidated > 0 {
		s.logger.Warn("fiscal year closed with unvalidated entries ignored",
			zap.Int("year", fy.Year),
			zap.Int64("ignored", unvalidated))
	}
	return &CloseFiscalYearResponse{
		FiscalYear:         *toFiscalYearResponse(fy),
		Result:             result,
		UnvalidatedIgnored: unvalidated,
	}, nil
}

// computeResult is class-7 net credit minus class-6 net debit over
// validated entries.
func (s *FiscalYearService) computeResult(ctx context.Context, fiscalYearID uuid.UUID) (decimal.Decimal, error) {
	revenueCredit, err := s.entryRepo.SumClassTotal(ctx, fiscalYearID, 7, ledger.SideCredit, false)
	if err != nil {
		return decimal.Zero, err
	}
	revenueDebit, err := s.entryRepo.SumClassTotal(ctx, fiscalYearID, 7, ledger.SideDebit, false)
	if err != nil {
		return decimal.Zero, err
	}
	expenseDebit, err := s.entryRepo.SumClassTotal(ctx, fiscalYearID, 6, ledger.SideDebit, false)
	if err != nil {
		return decimal.Zero, err
	}
	expenseCredit, err := s.entryRepo.SumClassTotal(ctx, fiscalYearID, 6, ledger.SideCredit, false)
	if err != nil {
		return decimal.Zero, err
	}
	revenue := revenueCredit.Sub(revenueDebit)
	expense := expenseDebit.Sub(expenseCredit)
	return revenue.Sub(expense), nil
}

// GetFiscalYear returns one fiscal year
func (s *FiscalYearService) GetFiscalYear(ctx context.Context, id uuid.UUID) (*FiscalYearResponse, error) {
	fy, err := s.fiscalYearRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFiscalYearResponse(fy), nil
}

// FindOpenFiscalYear returns the currently open year, or nil when none
// is open. Callers must handle the absent case.
func (s *FiscalYearService) FindOpenFiscalYear(ctx context.Context) (*FiscalYearResponse, error) {
	fy, err := s.fiscalYearRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	if fy == nil {
		return nil, nil
	}
	return toFiscalYearResponse(fy), nil
}

// ListFiscalYears returns all fiscal years
func (s *FiscalYearService) ListFiscalYears(ctx context.Context) ([]FiscalYearResponse, error) {
	years, err := s.fiscalYearRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]FiscalYearResponse, len(years))
	for i := range years {
		responses[i] = *toFiscalYearResponse(&years[i])
	}
	return responses, nil
}

func toFiscalYearResponse(fy *accounting.FiscalYear) *FiscalYearResponse {
	return &FiscalYearResponse{
		ID:       fy.ID,
		Year:     fy.Year,
		Start:    fy.StartDate,
		End:      fy.EndDate,
		Closed:   fy.Closed,
		ClosedAt: fy.ClosedAt,
		Result:   fy.Result,
	}
}
