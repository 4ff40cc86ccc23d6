package financing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/financing"
	"github.com/ongcompta/backend/internal/domain/shared"
)

type financingFixture struct {
	financingRepo *MockFinancingRepository
	donorRepo     *MockDonorRepository
	projectRepo   *MockProjectRepository
	auditRepo     *MockAuditRepository
	svc           *FinancingService
}

func newFinancingFixture() *financingFixture {
	f := &financingFixture{
		financingRepo: new(MockFinancingRepository),
		donorRepo:     new(MockDonorRepository),
		projectRepo:   new(MockProjectRepository),
		auditRepo:     new(MockAuditRepository),
	}
	f.svc = NewFinancingService(f.financingRepo, f.donorRepo, f.projectRepo,
		audit.NewTrail(f.auditRepo), passthroughTx{})
	return f
}

func testDonor(t *testing.T) *budget.Donor {
	donor, err := budget.NewDonor("UE", "Union Européenne", "Belgique", "", "", "EUR")
	require.NoError(t, err)
	return donor
}

func activeFinancing(t *testing.T) *financing.Financing {
	donor := testDonor(t)
	fin, err := financing.NewFinancing("UE-2026-001", donor.ID, financing.AffectationFree, nil,
		decimal.RequireFromString("50000000"), "",
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return fin
}

func TestFinancingService_CreateFinancing(t *testing.T) {
	ctx := context.Background()

	t.Run("records a commitment", func(t *testing.T) {
		f := newFinancingFixture()
		donor := testDonor(t)

		f.financingRepo.On("ExistsByReference", ctx, "UE-2026-001").Return(false, nil)
		f.donorRepo.On("FindByID", ctx, donor.ID).Return(donor, nil)
		f.financingRepo.On("Save", ctx, mock.AnythingOfType("*financing.Financing")).Return(nil)
		f.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := f.svc.CreateFinancing(ctx, CreateFinancingRequest{
			Reference:     "UE-2026-001",
			DonorID:       donor.ID,
			Affectation:   financing.AffectationFree,
			Amount:        decimal.RequireFromString("50000000"),
			AgreementDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			Actor:         "directeur",
		})

		require.NoError(t, err)
		assert.Equal(t, "UE-2026-001", resp.Reference)
		assert.Equal(t, financing.StatusActive, resp.Status)
		assert.Equal(t, "XOF", resp.Currency)
		assert.True(t, resp.TotalExpected.Equal(decimal.RequireFromString("50000000")))
	})

	t.Run("rejects a duplicate reference", func(t *testing.T) {
		f := newFinancingFixture()
		f.financingRepo.On("ExistsByReference", ctx, "UE-2026-001").Return(true, nil)

		_, err := f.svc.CreateFinancing(ctx, CreateFinancingRequest{
			Reference:   "UE-2026-001",
			DonorID:     testDonor(t).ID,
			Affectation: financing.AffectationFree,
			Amount:      decimal.RequireFromString("1000000"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.financingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("project-tied financing needs an existing project", func(t *testing.T) {
		f := newFinancingFixture()
		donor := testDonor(t)
		project, err := budget.NewProject("SANTE-01", "Santé communautaire", nil, nil, nil,
			decimal.RequireFromString("10000000"), "")
		require.NoError(t, err)

		f.financingRepo.On("ExistsByReference", ctx, "UE-2026-002").Return(false, nil)
		f.donorRepo.On("FindByID", ctx, donor.ID).Return(donor, nil)
		f.projectRepo.On("FindByID", ctx, project.ID).Return(nil, shared.ErrNotFound)

		_, err = f.svc.CreateFinancing(ctx, CreateFinancingRequest{
			Reference:     "UE-2026-002",
			DonorID:       donor.ID,
			Affectation:   financing.AffectationProject,
			ProjectID:     &project.ID,
			Amount:        decimal.RequireFromString("1000000"),
			AgreementDate: time.Now(),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestFinancingService_Tranches(t *testing.T) {
	ctx := context.Background()

	t.Run("schedules sequenced installments", func(t *testing.T) {
		f := newFinancingFixture()
		fin := activeFinancing(t)

		f.financingRepo.On("FindByID", ctx, fin.ID).Return(fin, nil)
		f.financingRepo.On("Save", ctx, fin).Return(nil)
		f.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		_, err := f.svc.AddTranche(ctx, fin.ID, AddTrancheRequest{
			PlannedAmount: decimal.RequireFromString("20000000"),
			PlannedDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		resp, err := f.svc.AddTranche(ctx, fin.ID, AddTrancheRequest{
			PlannedAmount: decimal.RequireFromString("30000000"),
			PlannedDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		require.Len(t, resp.Tranches, 2)
		assert.Equal(t, 1, resp.Tranches[0].Sequence)
		assert.Equal(t, 2, resp.Tranches[1].Sequence)
	})

	t.Run("full reception marks the tranche received", func(t *testing.T) {
		f := newFinancingFixture()
		fin := activeFinancing(t)
		tranche, err := fin.AddTranche(decimal.RequireFromString("20000000"),
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		f.financingRepo.On("FindByID", ctx, fin.ID).Return(fin, nil)
		f.financingRepo.On("Save", ctx, fin).Return(nil)
		f.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := f.svc.ReceiveTranche(ctx, fin.ID, tranche.ID, ReceiveTrancheRequest{})

		require.NoError(t, err)
		assert.Equal(t, financing.TrancheReceived, resp.Tranches[0].Status)
		assert.True(t, resp.TotalReceived.Equal(decimal.RequireFromString("20000000")))
		assert.True(t, resp.PercentReceived.Equal(decimal.RequireFromString("40")))
	})

	t.Run("partial reception leaves the tranche partial", func(t *testing.T) {
		f := newFinancingFixture()
		fin := activeFinancing(t)
		tranche, err := fin.AddTranche(decimal.RequireFromString("20000000"),
			time.Date(2099, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		f.financingRepo.On("FindByID", ctx, fin.ID).Return(fin, nil)
		f.financingRepo.On("Save", ctx, fin).Return(nil)
		f.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		partial := decimal.RequireFromString("5000000")
		resp, err := f.svc.ReceiveTranche(ctx, fin.ID, tranche.ID, ReceiveTrancheRequest{
			ReceivedAmount: &partial,
		})

		require.NoError(t, err)
		assert.Equal(t, financing.TranchePartial, resp.Tranches[0].Status)
	})

	t.Run("a tranche with funds cannot be removed", func(t *testing.T) {
		f := newFinancingFixture()
		fin := activeFinancing(t)
		tranche, err := fin.AddTranche(decimal.RequireFromString("20000000"),
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		_, err = fin.ReceiveTranche(tranche.ID, nil, nil)
		require.NoError(t, err)

		f.financingRepo.On("FindByID", ctx, fin.ID).Return(fin, nil)

		_, err = f.svc.RemoveTranche(ctx, fin.ID, tranche.ID, "directeur")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TRANCHE_RECEIVED", domainErr.Code)
	})
}

func TestFinancingService_DeleteFinancing(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an untouched financing", func(t *testing.T) {
		f := newFinancingFixture()
		fin := activeFinancing(t)

		f.financingRepo.On("FindByID", ctx, fin.ID).Return(fin, nil)
		f.financingRepo.On("Delete", ctx, fin.ID).Return(nil)
		f.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		require.NoError(t, f.svc.DeleteFinancing(ctx, fin.ID, "directeur"))
		f.financingRepo.AssertExpectations(t)
	})

	t.Run("refuses once money has moved", func(t *testing.T) {
		f := newFinancingFixture()
		fin := activeFinancing(t)
		tranche, err := fin.AddTranche(decimal.RequireFromString("10000000"), time.Now())
		require.NoError(t, err)
		_, err = fin.ReceiveTranche(tranche.ID, nil, nil)
		require.NoError(t, err)

		f.financingRepo.On("FindByID", ctx, fin.ID).Return(fin, nil)

		err = f.svc.DeleteFinancing(ctx, fin.ID, "directeur")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TRANCHE_RECEIVED", domainErr.Code)
		f.financingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestFinancingService_CancelFinancing(t *testing.T) {
	ctx := context.Background()
	f := newFinancingFixture()
	fin := activeFinancing(t)

	f.financingRepo.On("FindByID", ctx, fin.ID).Return(fin, nil)
	f.financingRepo.On("Save", ctx, fin).Return(nil)
	f.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

	resp, err := f.svc.CancelFinancing(ctx, fin.ID, "directeur")

	require.NoError(t, err)
	assert.Equal(t, financing.StatusCancelled, resp.Status)
}
