package financing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/financing"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// FinancingService tracks donor commitments and their tranches
type FinancingService struct {
	financingRepo financing.Repository
	donorRepo     budget.DonorRepository
	projectRepo   budget.ProjectRepository
	trail         *audit.Trail
	tx            shared.TxManager
}

// NewFinancingService creates a new FinancingService
func NewFinancingService(
	financingRepo financing.Repository,
	donorRepo budget.DonorRepository,
	projectRepo budget.ProjectRepository,
	trail *audit.Trail,
	tx shared.TxManager,
) *FinancingService {
	return &FinancingService{
		financingRepo: financingRepo,
		donorRepo:     donorRepo,
		projectRepo:   projectRepo,
		trail:         trail,
		tx:            tx,
	}
}

// CreateFinancingRequest represents a request to record a commitment
type CreateFinancingRequest struct {
	Reference     string                    `json:"reference" binding:"required"`
	DonorID       uuid.UUID                 `json:"donor_id" binding:"required"`
	Affectation   financing.AffectationType `json:"affectation" binding:"required"`
	ProjectID     *uuid.UUID                `json:"project_id"`
	Amount        decimal.Decimal           `json:"amount" binding:"required"`
	Currency      string                    `json:"currency"`
	AgreementDate time.Time                 `json:"agreement_date" binding:"required"`
	EndDate       *time.Time                `json:"end_date"`
	Actor         string                    `json:"-"`
}

// AddTrancheRequest schedules one installment
type AddTrancheRequest struct {
	PlannedAmount decimal.Decimal `json:"planned_amount" binding:"required"`
	PlannedDate   time.Time       `json:"planned_date" binding:"required"`
	Actor         string          `json:"-"`
}

// ReceiveTrancheRequest records the reception of an installment
type ReceiveTrancheRequest struct {
	ReceivedAmount *decimal.Decimal `json:"received_amount"`
	ReceivedDate   *time.Time       `json:"received_date"`
	Actor          string           `json:"-"`
}

// TrancheResponse represents a tranche in API responses. Status is the
// effective status: retard is derived, never stored.
type TrancheResponse struct {
	ID             uuid.UUID               `json:"id"`
	Sequence       int                     `json:"sequence"`
	PlannedAmount  decimal.Decimal         `json:"planned_amount"`
	PlannedDate    time.Time               `json:"planned_date"`
	ReceivedAmount decimal.Decimal         `json:"received_amount"`
	ReceivedDate   *time.Time              `json:"received_date,omitempty"`
	Status         financing.TrancheStatus `json:"status"`
}

// FinancingResponse represents a financing in API responses
type FinancingResponse struct {
	ID              uuid.UUID                 `json:"id"`
	Reference       string                    `json:"reference"`
	DonorID         uuid.UUID                 `json:"donor_id"`
	Affectation     financing.AffectationType `json:"affectation"`
	ProjectID       *uuid.UUID                `json:"project_id,omitempty"`
	Amount          decimal.Decimal           `json:"amount"`
	Currency        string                    `json:"currency"`
	AgreementDate   time.Time                 `json:"agreement_date"`
	EndDate         *time.Time                `json:"end_date,omitempty"`
	Status          financing.Status          `json:"status"`
	TotalReceived   decimal.Decimal           `json:"total_received"`
	TotalExpected   decimal.Decimal           `json:"total_expected"`
	PercentReceived decimal.Decimal           `json:"percent_received"`
	Tranches        []TrancheResponse         `json:"tranches"`
}

// CreateFinancing records a donor commitment with a unique reference
func (s *FinancingService) CreateFinancing(ctx context.Context, req CreateFinancingRequest) (*FinancingResponse, error) {
	exists, err := s.financingRepo.ExistsByReference(ctx, req.Reference)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Financing reference %s is already taken", req.Reference))
	}
	if _, err := s.donorRepo.FindByID(ctx, req.DonorID); err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	fin, err := financing.NewFinancing(req.Reference, req.DonorID, req.Affectation, req.ProjectID,
		req.Amount, valueobject.Currency(req.Currency), req.AgreementDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.financingRepo.Save(ctx, fin); err != nil {
			return err
		}
		return s.trail.Write(ctx, "financings", fin.ID, audit.ActionCreate, nil, fin, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toFinancingResponse(fin), nil
}

// AddTranche schedules an installment on an active financing
func (s *FinancingService) AddTranche(ctx context.Context, financingID uuid.UUID, req AddTrancheRequest) (*FinancingResponse, error) {
	fin, err := s.financingRepo.FindByID(ctx, financingID)
	if err != nil {
		return nil, err
	}
	tranche, err := fin.AddTranche(req.PlannedAmount, req.PlannedDate)
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.financingRepo.Save(ctx, fin); err != nil {
			return err
		}
		return s.trail.Write(ctx, "financing_tranches", tranche.ID, audit.ActionCreate, nil, tranche, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toFinancingResponse(fin), nil
}

// ReceiveTranche records money arriving on an installment
func (s *FinancingService) ReceiveTranche(ctx context.Context, financingID, trancheID uuid.UUID, req ReceiveTrancheRequest) (*FinancingResponse, error) {
	fin, err := s.financingRepo.FindByID(ctx, financingID)
	if err != nil {
		return nil, err
	}
	beforeTranche := findTranche(fin, trancheID)
	tranche, err := fin.ReceiveTranche(trancheID, req.ReceivedAmount, req.ReceivedDate)
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.financingRepo.Save(ctx, fin); err != nil {
			return err
		}
		return s.trail.Write(ctx, "financing_tranches", tranche.ID, audit.ActionUpdate, beforeTranche, tranche, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toFinancingResponse(fin), nil
}

// RemoveTranche deletes an installment that has received nothing
func (s *FinancingService) RemoveTranche(ctx context.Context, financingID, trancheID uuid.UUID, actor string) (*FinancingResponse, error) {
	fin, err := s.financingRepo.FindByID(ctx, financingID)
	if err != nil {
		return nil, err
	}
	before := findTranche(fin, trancheID)
	if err := fin.RemoveTranche(trancheID); err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.financingRepo.Save(ctx, fin); err != nil {
			return err
		}
		return s.trail.Write(ctx, "financing_tranches", trancheID, audit.ActionDelete, before, nil, actor)
	})
	if err != nil {
		return nil, err
	}
	return toFinancingResponse(fin), nil
}

// DeleteFinancing removes a financing on which no money has moved
func (s *FinancingService) DeleteFinancing(ctx context.Context, id uuid.UUID, actor string) error {
	fin, err := s.financingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !fin.CanDelete() {
		return shared.NewDomainError("TRANCHE_RECEIVED", "Financings with received funds cannot be deleted")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.financingRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.trail.Write(ctx, "financings", id, audit.ActionDelete, fin, nil, actor)
	})
}

// CloseFinancing closes a fully processed financing
func (s *FinancingService) CloseFinancing(ctx context.Context, id uuid.UUID, actor string) (*FinancingResponse, error) {
	return s.transition(ctx, id, actor, (*financing.Financing).CloseFinancing)
}

// CancelFinancing voids a financing on which no money has moved
func (s *FinancingService) CancelFinancing(ctx context.Context, id uuid.UUID, actor string) (*FinancingResponse, error) {
	return s.transition(ctx, id, actor, (*financing.Financing).Cancel)
}

func (s *FinancingService) transition(ctx context.Context, id uuid.UUID, actor string, apply func(*financing.Financing) error) (*FinancingResponse, error) {
	fin, err := s.financingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *fin
	if err := apply(fin); err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.financingRepo.Save(ctx, fin); err != nil {
			return err
		}
		return s.trail.Write(ctx, "financings", fin.ID, audit.ActionUpdate, &before, fin, actor)
	})
	if err != nil {
		return nil, err
	}
	return toFinancingResponse(fin), nil
}

// GetFinancing returns one financing with its tranches
func (s *FinancingService) GetFinancing(ctx context.Context, id uuid.UUID) (*FinancingResponse, error) {
	fin, err := s.financingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFinancingResponse(fin), nil
}

// ListFinancings returns financings matching the filter
func (s *FinancingService) ListFinancings(ctx context.Context, filter financing.Filter) (*shared.Paginated[FinancingResponse], error) {
	financings, err := s.financingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.financingRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]FinancingResponse, len(financings))
	for i := range financings {
		responses[i] = *toFinancingResponse(&financings[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func findTranche(fin *financing.Financing, trancheID uuid.UUID) *financing.Tranche {
	for i := range fin.Tranches {
		if fin.Tranches[i].ID == trancheID {
			snapshot := fin.Tranches[i]
			return &snapshot
		}
	}
	return nil
}

func toFinancingResponse(f *financing.Financing) *FinancingResponse {
	now := time.Now()
	tranches := make([]TrancheResponse, len(f.Tranches))
	for i, t := range f.Tranches {
		tranches[i] = TrancheResponse{
			ID:             t.ID,
			Sequence:       t.Sequence,
			PlannedAmount:  t.PlannedAmount,
			PlannedDate:    t.PlannedDate,
			ReceivedAmount: t.ReceivedAmount,
			ReceivedDate:   t.ReceivedDate,
			Status:         t.EffectiveStatus(now),
		}
	}
	return &FinancingResponse{
		ID:              f.ID,
		Reference:       f.Reference,
		DonorID:         f.DonorID,
		Affectation:     f.Affectation,
		ProjectID:       f.ProjectID,
		Amount:          f.Amount,
		Currency:        string(f.Currency),
		AgreementDate:   f.AgreementDate,
		EndDate:         f.EndDate,
		Status:          f.Status,
		TotalReceived:   f.TotalReceived(),
		TotalExpected:   f.TotalExpected(),
		PercentReceived: f.PercentReceived(),
		Tranches:        tranches,
	}
}
