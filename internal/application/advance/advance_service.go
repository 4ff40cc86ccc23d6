package advance

import (
	"context"
	"time"

	"github.com/google/uuid"
	appledger "github.com/ongcompta/backend/internal/application/ledger"
	"github.com/ongcompta/backend/internal/domain/advance"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// advanceSequenceScope names the counter handing out advance numbers
const advanceSequenceScope = "advance"

// AdvanceService manages the cash advance lifecycle
type AdvanceService struct {
	advanceRepo   advance.Repository
	seqRepo       ledger.SequenceRepository
	ledgerService *appledger.LedgerService
	trail         *audit.Trail
	tx            shared.TxManager
}

// NewAdvanceService creates a new AdvanceService
func NewAdvanceService(
	advanceRepo advance.Repository,
	seqRepo ledger.SequenceRepository,
	ledgerService *appledger.LedgerService,
	trail *audit.Trail,
	tx shared.TxManager,
) *AdvanceService {
	return &AdvanceService{
		advanceRepo:   advanceRepo,
		seqRepo:       seqRepo,
		ledgerService: ledgerService,
		trail:         trail,
		tx:            tx,
	}
}

// IssueAdvanceRequest represents a request to issue an advance.
// When Disburse is set, the matching treasury entry is created in the
// same operation and linked.
type IssueAdvanceRequest struct {
	Beneficiary string                  `json:"beneficiary" binding:"required"`
	Amount      decimal.Decimal         `json:"amount" binding:"required"`
	Purpose     string                  `json:"purpose"`
	ProjectID   *uuid.UUID              `json:"project_id"`
	Disburse    *DisburseAdvanceRequest `json:"disburse"`
	Actor       string                  `json:"-"`
}

// DisburseAdvanceRequest describes the treasury entry paying an advance out
type DisburseAdvanceRequest struct {
	JournalID         uuid.UUID `json:"journal_id" binding:"required"`
	AdvanceAccountID  uuid.UUID `json:"advance_account_id" binding:"required"`
	TreasuryAccountID uuid.UUID `json:"treasury_account_id" binding:"required"`
}

// JustifyAdvanceRequest represents a justification with receipts
type JustifyAdvanceRequest struct {
	JustifiedAmount  decimal.Decimal `json:"justified_amount" binding:"required"`
	ReimbursedAmount decimal.Decimal `json:"reimbursed_amount"`
	Notes            string          `json:"notes"`
	EntryID          *uuid.UUID      `json:"entry_id"`
	Actor            string          `json:"-"`
}

// AdvanceResponse represents an advance in API responses
type AdvanceResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Number               string          `json:"number"`
	IssuedAt             time.Time       `json:"issued_at"`
	Beneficiary          string          `json:"beneficiary"`
	Amount               decimal.Decimal `json:"amount"`
	Purpose              string          `json:"purpose,omitempty"`
	ProjectID            *uuid.UUID      `json:"project_id,omitempty"`
	Status               advance.Status  `json:"status"`
	DueDate              time.Time       `json:"due_date"`
	JustifiedAmount      decimal.Decimal `json:"justified_amount"`
	ReimbursedAmount     decimal.Decimal `json:"reimbursed_amount"`
	Remaining            decimal.Decimal `json:"remaining"`
	Overdue              bool            `json:"overdue"`
	Notes                string          `json:"notes,omitempty"`
	DisbursementEntryID  *uuid.UUID      `json:"disbursement_entry_id,omitempty"`
	JustificationEntryID *uuid.UUID      `json:"justification_entry_id,omitempty"`
}

// IssueAdvance issues a numbered advance and optionally creates the
// disbursement entry in the same operation.
func (s *AdvanceService) IssueAdvance(ctx context.Context, req IssueAdvanceRequest) (*AdvanceResponse, error) {
	var adv *advance.Advance
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		year := time.Now().Year()
		seq, err := s.seqRepo.Next(ctx, advanceSequenceScope, year)
		if err != nil {
			return err
		}
		adv, err = advance.NewAdvance(advance.FormatAdvanceNumber(year, seq),
			req.Beneficiary, req.Amount, req.Purpose, req.ProjectID)
		if err != nil {
			return err
		}
		if err := s.advanceRepo.Save(ctx, adv); err != nil {
			return err
		}
		return s.trail.Write(ctx, "advances", adv.ID, audit.ActionCreate, nil, adv, req.Actor)
	})
	if err != nil {
		return nil, err
	}

	if req.Disburse != nil {
		entry, err := s.ledgerService.CreateSimpleEntry(ctx, appledger.SimpleEntryRequest{
			Kind:              appledger.SimpleAdvance,
			JournalID:         req.Disburse.JournalID,
			Date:              adv.IssuedAt,
			Label:             "Avance " + adv.Number + " - " + adv.Beneficiary,
			Reference:         adv.Number,
			Amount:            adv.Amount,
			AccountID:         req.Disburse.AdvanceAccountID,
			TreasuryAccountID: req.Disburse.TreasuryAccountID,
			Actor:             req.Actor,
		})
		if err != nil {
			return nil, err
		}
		before := *adv
		adv.LinkDisbursementEntry(entry.ID)
		err = s.tx.InTx(ctx, func(ctx context.Context) error {
			if err := s.advanceRepo.Save(ctx, adv); err != nil {
				return err
			}
			return s.trail.Write(ctx, "advances", adv.ID, audit.ActionUpdate, &before, adv, req.Actor)
		})
		if err != nil {
			return nil, err
		}
	}
	return toAdvanceResponse(adv), nil
}

// JustifyAdvance records receipts against an advance. Full coverage
// settles it; partial coverage leaves it justified with a remainder.
func (s *AdvanceService) JustifyAdvance(ctx context.Context, id uuid.UUID, req JustifyAdvanceRequest) (*AdvanceResponse, error) {
	adv, err := s.advanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *adv
	if err := adv.Justify(req.JustifiedAmount, req.ReimbursedAmount, req.Notes); err != nil {
		return nil, err
	}
	if req.EntryID != nil {
		adv.LinkJustificationEntry(*req.EntryID)
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.advanceRepo.Save(ctx, adv); err != nil {
			return err
		}
		return s.trail.Write(ctx, "advances", adv.ID, audit.ActionUpdate, &before, adv, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toAdvanceResponse(adv), nil
}

// DeductAdvance marks the remainder as deducted from payroll. The
// caller must hold the director role; the HTTP layer enforces it.
func (s *AdvanceService) DeductAdvance(ctx context.Context, id uuid.UUID, actor string) (*AdvanceResponse, error) {
	adv, err := s.advanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *adv
	if err := adv.Deduct(); err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.advanceRepo.Save(ctx, adv); err != nil {
			return err
		}
		return s.trail.Write(ctx, "advances", adv.ID, audit.ActionUpdate, &before, adv, actor)
	})
	if err != nil {
		return nil, err
	}
	return toAdvanceResponse(adv), nil
}

// GetAdvance returns one advance
func (s *AdvanceService) GetAdvance(ctx context.Context, id uuid.UUID) (*AdvanceResponse, error) {
	adv, err := s.advanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAdvanceResponse(adv), nil
}

// ListAdvances returns advances matching the filter
func (s *AdvanceService) ListAdvances(ctx context.Context, filter advance.Filter) (*shared.Paginated[AdvanceResponse], error) {
	advances, err := s.advanceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.advanceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]AdvanceResponse, len(advances))
	for i := range advances {
		responses[i] = *toAdvanceResponse(&advances[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListOverdueAdvances returns pending advances past their due date
func (s *AdvanceService) ListOverdueAdvances(ctx context.Context) ([]AdvanceResponse, error) {
	advances, err := s.advanceRepo.FindOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	responses := make([]AdvanceResponse, len(advances))
	for i := range advances {
		responses[i] = *toAdvanceResponse(&advances[i])
	}
	return responses, nil
}

func toAdvanceResponse(a *advance.Advance) *AdvanceResponse {
	return &AdvanceResponse{
		ID:                   a.ID,
		Number:               a.Number,
		IssuedAt:             a.IssuedAt,
		Beneficiary:          a.Beneficiary,
		Amount:               a.Amount,
		Purpose:              a.Purpose,
		ProjectID:            a.ProjectID,
		Status:               a.Status,
		DueDate:              a.DueDate,
		JustifiedAmount:      a.JustifiedAmount,
		ReimbursedAmount:     a.ReimbursedAmount,
		Remaining:            a.Remaining(),
		Overdue:              a.IsOverdue(),
		Notes:                a.Notes,
		DisbursementEntryID:  a.DisbursementEntryID,
		JustificationEntryID: a.JustificationEntryID,
	}
}
