package financing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFinancing(t *testing.T) *Financing {
	t.Helper()
	f, err := NewFinancing("UE-2025-001", uuid.New(), AffectationFree, nil,
		decimal.NewFromInt(10_000_000), valueobject.EUR,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return f
}

func TestNewFinancing(t *testing.T) {
	t.Run("creates active financing", func(t *testing.T) {
		f := createTestFinancing(t)
		assert.Equal(t, StatusActive, f.Status)
		assert.True(t, f.TotalReceived().IsZero())
		assert.True(t, f.TotalExpected().Equal(f.Amount))
		assert.True(t, f.PercentReceived().IsZero())
	})

	t.Run("project-tied financing needs a project", func(t *testing.T) {
		_, err := NewFinancing("REF", uuid.New(), AffectationProject, nil,
			decimal.NewFromInt(100), valueobject.XOF, time.Now(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewFinancing("REF", uuid.New(), AffectationFree, nil,
			decimal.Zero, valueobject.XOF, time.Now(), nil)
		assert.Error(t, err)
	})
}

func TestAddTranche(t *testing.T) {
	t.Run("sequences tranches", func(t *testing.T) {
		f := createTestFinancing(t)
		first, err := f.AddTranche(decimal.NewFromInt(4_000_000), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		second, err := f.AddTranche(decimal.NewFromInt(6_000_000), time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, 1, first.Sequence)
		assert.Equal(t, 2, second.Sequence)
		assert.Equal(t, TrancheExpected, first.Status)
	})

	t.Run("closed financing refuses tranches", func(t *testing.T) {
		f := createTestFinancing(t)
		require.NoError(t, f.CloseFinancing())
		_, err := f.AddTranche(decimal.NewFromInt(100), time.Now())
		assert.Error(t, err)
	})
}

func TestReceiveTranche(t *testing.T) {
	t.Run("defaults received amount to planned", func(t *testing.T) {
		f := createTestFinancing(t)
		tranche, err := f.AddTranche(decimal.NewFromInt(4_000_000), time.Now())
		require.NoError(t, err)

		received, err := f.ReceiveTranche(tranche.ID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, TrancheReceived, received.Status)
		assert.True(t, received.ReceivedAmount.Equal(decimal.NewFromInt(4_000_000)))
		require.NotNil(t, received.ReceivedDate)
		assert.True(t, f.TotalReceived().Equal(decimal.NewFromInt(4_000_000)))
		assert.Equal(t, "40", f.PercentReceived().String())
	})

	t.Run("partial reception", func(t *testing.T) {
		f := createTestFinancing(t)
		tranche, err := f.AddTranche(decimal.NewFromInt(4_000_000), time.Now())
		require.NoError(t, err)

		amount := decimal.NewFromInt(1_000_000)
		received, err := f.ReceiveTranche(tranche.ID, &amount, nil)
		require.NoError(t, err)
		assert.Equal(t, TranchePartial, received.Status)
		assert.True(t, f.TotalExpected().Equal(decimal.NewFromInt(9_000_000)))
	})

	t.Run("unknown tranche", func(t *testing.T) {
		f := createTestFinancing(t)
		_, err := f.ReceiveTranche(uuid.New(), nil, nil)
		assert.Error(t, err)
	})
}

func TestTrancheOverdue(t *testing.T) {
	now := time.Now()

	t.Run("expected past planned date is overdue", func(t *testing.T) {
		f := createTestFinancing(t)
		tranche, err := f.AddTranche(decimal.NewFromInt(100), now.AddDate(0, -1, 0))
		require.NoError(t, err)
		assert.Equal(t, TrancheOverdue, tranche.EffectiveStatus(now))
	})

	t.Run("partial past planned date is overdue", func(t *testing.T) {
		f := createTestFinancing(t)
		tranche, err := f.AddTranche(decimal.NewFromInt(100), now.AddDate(0, -1, 0))
		require.NoError(t, err)
		amount := decimal.NewFromInt(50)
		_, err = f.ReceiveTranche(tranche.ID, &amount, nil)
		require.NoError(t, err)
		assert.Equal(t, TrancheOverdue, f.Tranches[0].EffectiveStatus(now))
	})

	t.Run("fully received is never overdue", func(t *testing.T) {
		f := createTestFinancing(t)
		tranche, err := f.AddTranche(decimal.NewFromInt(100), now.AddDate(0, -1, 0))
		require.NoError(t, err)
		_, err = f.ReceiveTranche(tranche.ID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, TrancheReceived, f.Tranches[0].EffectiveStatus(now))
	})
}

func TestDeletionGuard(t *testing.T) {
	t.Run("financing with received funds cannot be deleted or cancelled", func(t *testing.T) {
		f := createTestFinancing(t)
		tranche, err := f.AddTranche(decimal.NewFromInt(100), time.Now())
		require.NoError(t, err)
		_, err = f.ReceiveTranche(tranche.ID, nil, nil)
		require.NoError(t, err)

		assert.False(t, f.CanDelete())
		assert.Error(t, f.Cancel())
	})

	t.Run("received tranche cannot be removed", func(t *testing.T) {
		f := createTestFinancing(t)
		tranche, err := f.AddTranche(decimal.NewFromInt(100), time.Now())
		require.NoError(t, err)
		_, err = f.ReceiveTranche(tranche.ID, nil, nil)
		require.NoError(t, err)

		err = f.RemoveTranche(tranche.ID)
		require.Error(t, err)
		assert.Len(t, f.Tranches, 1)
	})

	t.Run("untouched tranche can be removed and resequences", func(t *testing.T) {
		f := createTestFinancing(t)
		first, err := f.AddTranche(decimal.NewFromInt(100), time.Now())
		require.NoError(t, err)
		firstID := first.ID
		_, err = f.AddTranche(decimal.NewFromInt(200), time.Now())
		require.NoError(t, err)

		require.NoError(t, f.RemoveTranche(firstID))
		require.Len(t, f.Tranches, 1)
		assert.Equal(t, 1, f.Tranches[0].Sequence)
	})

	t.Run("untouched financing can be cancelled", func(t *testing.T) {
		f := createTestFinancing(t)
		require.NoError(t, f.Cancel())
		assert.Equal(t, StatusCancelled, f.Status)
	})
}
