package advance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ongcompta/backend/internal/domain/advance"
	"github.com/ongcompta/backend/internal/domain/audit"
)

// passthroughTx runs the function directly, standing in for a real
// transaction in unit tests.
type passthroughTx struct{}

func (passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockAdvanceRepository is a mock implementation of advance.Repository
type MockAdvanceRepository struct {
	mock.Mock
}

func (m *MockAdvanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*advance.Advance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*advance.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) FindByNumber(ctx context.Context, number string) (*advance.Advance, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*advance.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) FindAll(ctx context.Context, filter advance.Filter) ([]advance.Advance, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]advance.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) FindOverdue(ctx context.Context, cutoff time.Time) ([]advance.Advance, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]advance.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) Save(ctx context.Context, adv *advance.Advance) error {
	args := m.Called(ctx, adv)
	return args.Error(0)
}

func (m *MockAdvanceRepository) Count(ctx context.Context, filter advance.Filter) (int64, error) {
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
