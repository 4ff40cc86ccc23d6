package financing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/financing"
)

// passthroughTx runs the function directly, standing in for a real
// transaction in unit tests.
type passthroughTx struct{}

func (passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockFinancingRepository is a mock implementation of financing.Repository
type MockFinancingRepository struct {
	mock.Mock
}

func (m *MockFinancingRepository) FindByID(ctx context.Context, id uuid.UUID) (*financing.Financing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financing.Financing), args.Error(1)
}

func (m *MockFinancingRepository) FindByReference(ctx context.Context, reference string) (*financing.Financing, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financing.Financing), args.Error(1)
}

func (m *MockFinancingRepository) FindAll(ctx context.Context, filter financing.Filter) ([]financing.Financing, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]financing.Financing), args.Error(1)
}

func (m *MockFinancingRepository) Save(ctx context.Context, fin *financing.Financing) error {
	args := m.Called(ctx, fin)
	return args.Error(0)
}

func (m *MockFinancingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFinancingRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockFinancingRepository) Count(ctx context.Context, filter financing.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockDonorRepository is a mock implementation of budget.DonorRepository
type MockDonorRepository struct {
	mock.Mock
}

func (m *MockDonorRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Donor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Donor), args.Error(1)
}

func (m *MockDonorRepository) FindByCode(ctx context.Context, code string) (*budget.Donor, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Donor), args.Error(1)
}

func (m *MockDonorRepository) FindAll(ctx context.Context) ([]budget.Donor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]budget.Donor), args.Error(1)
}

func (m *MockDonorRepository) Save(ctx context.Context, donor *budget.Donor) error {
	args := m.Called(ctx, donor)
	return args.Error(0)
}

func (m *MockDonorRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockProjectRepository is a mock implementation of budget.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByCode(ctx context.Context, code string) (*budget.Project, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter budget.ProjectFilter) ([]budget.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]budget.Project), args.Error(1)
}

func (m *MockProjectRepository) FindActive(ctx context.Context) ([]budget.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]budget.Project), args.Error(1)
}

func (m *MockProjectRepository) FindBudgetLineByID(ctx context.Context, id uuid.UUID) (*budget.BudgetLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.BudgetLine), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *budget.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter budget.ProjectFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
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
