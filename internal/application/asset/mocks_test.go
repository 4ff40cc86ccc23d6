package asset

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/asset"
	"github.com/ongcompta/backend/internal/domain/audit"
)

// passthroughTx runs the function directly, standing in for a real
// transaction in unit tests.
type passthroughTx struct{}

func (passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockAssetRepository is a mock implementation of asset.Repository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.FixedAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) FindByCode(ctx context.Context, code string) (*asset.FixedAsset, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) FindAll(ctx context.Context, filter asset.Filter) ([]asset.FixedAsset, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]asset.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) FindActive(ctx context.Context) ([]asset.FixedAsset, error) {
	args := m.Called(ctx)
	return args.Get(0).([]asset.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) Save(ctx context.Context, fixedAsset *asset.FixedAsset) error {
	args := m.Called(ctx, fixedAsset)
	return args.Error(0)
}

func (m *MockAssetRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetRepository) Count(ctx context.Context, filter asset.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSequenceRepository is a mock implementation of ledger.SequenceRepository
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, scope string, year int) (int, error) {
	args := m.Called(ctx, scope, year)
	return args.Int(0), args.Error(1)
}

// MockFiscalYearRepository is a mock implementation of accounting.FiscalYearRepository
type MockFiscalYearRepository struct {
	mock.Mock
}

func (m *MockFiscalYearRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.FiscalYear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindByYear(ctx context.Context, year int) (*accounting.FiscalYear, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindOpen(ctx context.Context) (*accounting.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindAll(ctx context.Context) ([]accounting.FiscalYear, error) {
	args := m.Called(ctx)
	return args.Get(0).([]accounting.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) Save(ctx context.Context, fiscalYear *accounting.FiscalYear) error {
	args := m.Called(ctx, fiscalYear)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) ExistsByYear(ctx context.Context, year int) (bool, error) {
	args := m.Called(ctx, year)
	return args.Bool(0), args.Error(1)
}

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, record *audit.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) FindAll(ctx context.Context, filter audit.Filter) ([]audit.Record, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]audit.Record), args.Error(1)
}

func (m *MockAuditRepository) FindByRecord(ctx context.Context, table string, recordID uuid.UUID) ([]audit.Record, error) {
	args := m.Called(ctx, table, recordID)
	return args.Get(0).([]audit.Record), args.Error(1)
}
