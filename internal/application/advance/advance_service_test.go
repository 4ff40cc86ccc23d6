package advance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ongcompta/backend/internal/domain/advance"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/shared"
)

func newAdvanceService(advanceRepo *MockAdvanceRepository, seqRepo *MockSequenceRepository, auditRepo *MockAuditRepository) *AdvanceService {
	return NewAdvanceService(advanceRepo, seqRepo, nil, audit.NewTrail(auditRepo), passthroughTx{})
}

func pendingAdvance(t *testing.T, amount string) *advance.Advance {
	adv, err := advance.NewAdvance("AV20260012", "Moussa Diallo",
		decimal.RequireFromString(amount), "Mission terrain Kolda", nil)
	require.NoError(t, err)
	return adv
}

func TestAdvanceService_IssueAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a numbered advance", func(t *testing.T) {
		advanceRepo := new(MockAdvanceRepository)
		seqRepo := new(MockSequenceRepository)
		auditRepo := new(MockAuditRepository)
		svc := newAdvanceService(advanceRepo, seqRepo, auditRepo)

		year := time.Now().Year()
		seqRepo.On("Next", ctx, "advance", year).Return(12, nil)
		advanceRepo.On("Save", ctx, mock.AnythingOfType("*advance.Advance")).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.IssueAdvance(ctx, IssueAdvanceRequest{
			Beneficiary: "Moussa Diallo",
			Amount:      decimal.RequireFromString("200000"),
			Purpose:     "Mission terrain Kolda",
			Actor:       "comptable",
		})

		require.NoError(t, err)
		assert.Equal(t, advance.FormatAdvanceNumber(year, 12), resp.Number)
		assert.Equal(t, advance.StatusPending, resp.Status)
		assert.True(t, resp.Remaining.Equal(decimal.RequireFromString("200000")))
		assert.Equal(t, resp.IssuedAt.AddDate(0, 0, advance.DueDays).Day(), resp.DueDate.Day())
		assert.False(t, resp.Overdue)
		advanceRepo.AssertExpectations(t)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		advanceRepo := new(MockAdvanceRepository)
		seqRepo := new(MockSequenceRepository)
		svc := newAdvanceService(advanceRepo, seqRepo, new(MockAuditRepository))

		seqRepo.On("Next", ctx, "advance", time.Now().Year()).Return(13, nil)

		_, err := svc.IssueAdvance(ctx, IssueAdvanceRequest{
			Beneficiary: "Moussa Diallo",
			Amount:      decimal.Zero,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		advanceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAdvanceService_JustifyAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("partial justification leaves a remainder", func(t *testing.T) {
		adv := pendingAdvance(t, "200000")
		advanceRepo := new(MockAdvanceRepository)
		auditRepo := new(MockAuditRepository)
		svc := newAdvanceService(advanceRepo, new(MockSequenceRepository), auditRepo)

		advanceRepo.On("FindByID", ctx, adv.ID).Return(adv, nil)
		advanceRepo.On("Save", ctx, adv).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.JustifyAdvance(ctx, adv.ID, JustifyAdvanceRequest{
			JustifiedAmount: decimal.RequireFromString("150000"),
			Notes:           "Reçus carburant et hébergement",
			Actor:           "comptable",
		})

		require.NoError(t, err)
		assert.Equal(t, advance.StatusJustified, resp.Status)
		assert.True(t, resp.Remaining.Equal(decimal.RequireFromString("50000")))
	})

	t.Run("full coverage settles the advance", func(t *testing.T) {
		adv := pendingAdvance(t, "200000")
		advanceRepo := new(MockAdvanceRepository)
		auditRepo := new(MockAuditRepository)
		svc := newAdvanceService(advanceRepo, new(MockSequenceRepository), auditRepo)

		advanceRepo.On("FindByID", ctx, adv.ID).Return(adv, nil)
		advanceRepo.On("Save", ctx, adv).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.JustifyAdvance(ctx, adv.ID, JustifyAdvanceRequest{
			JustifiedAmount:  decimal.RequireFromString("150000"),
			ReimbursedAmount: decimal.RequireFromString("50000"),
		})

		require.NoError(t, err)
		assert.Equal(t, advance.StatusSettled, resp.Status)
		assert.True(t, resp.Remaining.IsZero())
	})

	t.Run("settled advances refuse further justification", func(t *testing.T) {
		adv := pendingAdvance(t, "100000")
		require.NoError(t, adv.Justify(decimal.RequireFromString("100000"), decimal.Zero, ""))

		advanceRepo := new(MockAdvanceRepository)
		svc := newAdvanceService(advanceRepo, new(MockSequenceRepository), new(MockAuditRepository))
		advanceRepo.On("FindByID", ctx, adv.ID).Return(adv, nil)

		_, err := svc.JustifyAdvance(ctx, adv.ID, JustifyAdvanceRequest{
			JustifiedAmount: decimal.RequireFromString("10000"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		advanceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAdvanceService_DeductAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the remainder as deducted from payroll", func(t *testing.T) {
		adv := pendingAdvance(t, "200000")
		advanceRepo := new(MockAdvanceRepository)
		auditRepo := new(MockAuditRepository)
		svc := newAdvanceService(advanceRepo, new(MockSequenceRepository), auditRepo)

		advanceRepo.On("FindByID", ctx, adv.ID).Return(adv, nil)
		advanceRepo.On("Save", ctx, adv).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.DeductAdvance(ctx, adv.ID, "directeur")

		require.NoError(t, err)
		assert.Equal(t, advance.StatusDeducted, resp.Status)
	})

	t.Run("terminal advances cannot be deducted", func(t *testing.T) {
		adv := pendingAdvance(t, "100000")
		require.NoError(t, adv.Justify(decimal.RequireFromString("100000"), decimal.Zero, ""))

		advanceRepo := new(MockAdvanceRepository)
		svc := newAdvanceService(advanceRepo, new(MockSequenceRepository), new(MockAuditRepository))
		advanceRepo.On("FindByID", ctx, adv.ID).Return(adv, nil)

		_, err := svc.DeductAdvance(ctx, adv.ID, "directeur")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}
