package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AllocationService splits entry lines across projects for analytic
// reporting.
type AllocationService struct {
	entryRepo   ledger.EntryRepository
	projectRepo budget.ProjectRepository
	trail       *audit.Trail
	tx          shared.TxManager
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(
	entryRepo ledger.EntryRepository,
	projectRepo budget.ProjectRepository,
	trail *audit.Trail,
	tx shared.TxManager,
) *AllocationService {
	return &AllocationService{
		entryRepo:   entryRepo,
		projectRepo: projectRepo,
		trail:       trail,
		tx:          tx,
	}
}

// AllocationInput is one project share of a line
type AllocationInput struct {
	ProjectID    uuid.UUID       `json:"project_id" binding:"required"`
	BudgetLineID *uuid.UUID      `json:"budget_line_id"`
	Percentage   decimal.Decimal `json:"percentage" binding:"required"`
}

// AllocateLineRequest replaces the allocation set of a line
type AllocateLineRequest struct {
	Allocations []AllocationInput `json:"allocations" binding:"required,dive"`
	Actor       string            `json:"-"`
}

// AllocateLineResponse returns the stored allocations. Warning is set
// when the percentages do not sum to 100.
type AllocateLineResponse struct {
	LineID      uuid.UUID            `json:"line_id"`
	Allocations []AllocationResponse `json:"allocations"`
	Warning     string               `json:"warning,omitempty"`
}

// AllocateLine replaces the allocation set of a line. Percentages that
// do not sum to 100 are accepted: partial allocation is a legitimate
// intermediate state, so the caller only gets a warning.
func (s *AllocationService) AllocateLine(ctx context.Context, lineID uuid.UUID, req AllocateLineRequest) (*AllocateLineResponse, error) {
	line, err := s.entryRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	entry, err := s.entryRepo.FindByID(ctx, line.EntryID)
	if err != nil {
		return nil, err
	}
	if entry.Validated {
		return nil, shared.NewDomainError("ENTRY_VALIDATED", "Validated entries cannot be reallocated")
	}

	amount := line.Amount()
	allocations := make([]ledger.AnalyticalAllocation, 0, len(req.Allocations))
	total := decimal.Zero
	for _, input := range req.Allocations {
		if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
			return nil, err
		}
		alloc, err := ledger.NewAnalyticalAllocation(line.ID, input.ProjectID, input.BudgetLineID, input.Percentage, amount)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, alloc)
		total = total.Add(input.Percentage)
	}

	before := line.Allocations
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.ReplaceAllocations(ctx, line.ID, allocations); err != nil {
			return err
		}
		return s.trail.Write(ctx, "analytical_allocations", line.ID, audit.ActionUpdate, before, allocations, req.Actor)
	})
	if err != nil {
		return nil, err
	}

	resp := &AllocateLineResponse{LineID: line.ID}
	resp.Allocations = make([]AllocationResponse, len(allocations))
	for i, alloc := range allocations {
		resp.Allocations[i] = AllocationResponse{
			ID:           alloc.ID,
			ProjectID:    alloc.ProjectID,
			BudgetLineID: alloc.BudgetLineID,
			Percentage:   alloc.Percentage,
			Amount:       alloc.Amount,
		}
	}
	if len(allocations) > 0 && total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		resp.Warning = fmt.Sprintf("allocations cover %s%% of the line", total.String())
	}
	return resp, nil
}

// ListLineAllocations returns the allocations of one line
func (s *AllocationService) ListLineAllocations(ctx context.Context, lineID uuid.UUID) ([]AllocationResponse, error) {
	line, err := s.entryRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	responses := make([]AllocationResponse, len(line.Allocations))
	for i, alloc := range line.Allocations {
		responses[i] = AllocationResponse{
			ID:           alloc.ID,
			ProjectID:    alloc.ProjectID,
			BudgetLineID: alloc.BudgetLineID,
			Percentage:   alloc.Percentage,
			Amount:       alloc.Amount,
		}
	}
	return responses, nil
}
