package accounting

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
)

func newFiscalYearService(t *testing.T, fyRepo *MockFiscalYearRepository, entryRepo *MockEntryRepository, auditRepo *MockAuditRepository) *FiscalYearService {
	return NewFiscalYearService(fyRepo, entryRepo, audit.NewTrail(auditRepo), passthroughTx{}, zaptest.NewLogger(t))
}

func TestFiscalYearService_CreateFiscalYear(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to calendar year", func(t *testing.T) {
		fyRepo := new(MockFiscalYearRepository)
		auditRepo := new(MockAuditRepository)
		svc := newFiscalYearService(t, fyRepo, new(MockEntryRepository), auditRepo)

		fyRepo.On("ExistsByYear", ctx, 2026).Return(false, nil)
		fyRepo.On("Save", ctx, mock.AnythingOfType("*accounting.FiscalYear")).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.CreateFiscalYear(ctx, CreateFiscalYearRequest{Year: 2026, Actor: "aminata"})

		require.NoError(t, err)
		assert.Equal(t, 2026, resp.Year)
		assert.Equal(t, 1, resp.Start.Day())
		assert.Equal(t, 31, resp.End.Day())
		assert.False(t, resp.Closed)
	})

	t.Run("rejects duplicate year", func(t *testing.T) {
		fyRepo := new(MockFiscalYearRepository)
		svc := newFiscalYearService(t, fyRepo, new(MockEntryRepository), new(MockAuditRepository))

		fyRepo.On("ExistsByYear", ctx, 2026).Return(true, nil)

		_, err := svc.CreateFiscalYear(ctx, CreateFiscalYearRequest{Year: 2026})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestFiscalYearService_CloseFiscalYear(t *testing.T) {
	ctx := context.Background()

	newOpenYear := func(t *testing.T) *accounting.FiscalYear {
		fy, err := accounting.NewCalendarFiscalYear(2026)
		require.NoError(t, err)
		return fy
	}

	t.Run("unvalidated entries block closure", func(t *testing.T) {
		fy := newOpenYear(t)
		fyRepo := new(MockFiscalYearRepository)
		entryRepo := new(MockEntryRepository)
		svc := newFiscalYearService(t, fyRepo, entryRepo, new(MockAuditRepository))

		fyRepo.On("FindByID", ctx, fy.ID).Return(fy, nil)
		entryRepo.On("CountUnvalidatedByFiscalYear", ctx, fy.ID).Return(int64(2), nil)

		_, err := svc.CloseFiscalYear(ctx, fy.ID, CloseFiscalYearRequest{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNVALIDATED_ENTRIES", domainErr.Code)
		fyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("force ignores drafts and reports the count", func(t *testing.T) {
		fy := newOpenYear(t)
		fyRepo := new(MockFiscalYearRepository)
		entryRepo := new(MockEntryRepository)
		auditRepo := new(MockAuditRepository)
		svc := newFiscalYearService(t, fyRepo, entryRepo, auditRepo)

		fyRepo.On("FindByID", ctx, fy.ID).Return(fy, nil)
		entryRepo.On("CountUnvalidatedByFiscalYear", ctx, fy.ID).Return(int64(2), nil)
		entryRepo.On("SumClassTotal", ctx, fy.ID, 7, ledger.SideCredit, false).Return(decimal.RequireFromString("5000000"), nil)
		entryRepo.On("SumClassTotal", ctx, fy.ID, 7, ledger.SideDebit, false).Return(decimal.Zero, nil)
		entryRepo.On("SumClassTotal", ctx, fy.ID, 6, ledger.SideDebit, false).Return(decimal.RequireFromString("3200000"), nil)
		entryRepo.On("SumClassTotal", ctx, fy.ID, 6, ledger.SideCredit, false).Return(decimal.RequireFromString("200000"), nil)
		fyRepo.On("Save", ctx, fy).Return(nil)
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Record")).Return(nil)

		resp, err := svc.CloseFiscalYear(ctx, fy.ID, CloseFiscalYearRequest{Force: true, Actor: "directeur"})

		require.NoError(t, err)
		assert.True(t, resp.Result.Equal(decimal.RequireFromString("2000000")))
		assert.Equal(t, int64(2), resp.UnvalidatedIgnored)
		assert.True(t, resp.FiscalYear.Closed)
		require.NotNil(t, resp.FiscalYear.Result)
	})

	t.Run("closing twice fails", func(t *testing.T) {
		fy := newOpenYear(t)
		require.NoError(t, fy.Close(decimal.Zero))

		fyRepo := new(MockFiscalYearRepository)
		svc := newFiscalYearService(t, fyRepo, new(MockEntryRepository), new(MockAuditRepository))
		fyRepo.On("FindByID", ctx, fy.ID).Return(fy, nil)

		_, err := svc.CloseFiscalYear(ctx, fy.ID, CloseFiscalYearRequest{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FISCAL_YEAR_CLOSED", domainErr.Code)
	})
}

func TestFiscalYearService_FindOpenFiscalYear(t *testing.T) {
	ctx := context.Background()

	fyRepo := new(MockFiscalYearRepository)
	svc := newFiscalYearService(t, fyRepo, new(MockEntryRepository), new(MockAuditRepository))

	fyRepo.On("FindOpen", ctx).Return(nil, nil)

	resp, err := svc.FindOpenFiscalYear(ctx)
	require.NoError(t, err)
	assert.Nil(t, resp)
}
