package asset

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAsset(t *testing.T) *FixedAsset {
	t.Helper()
	asset, err := NewFixedAsset(
		FormatAssetCode(CategoryIT, 1), "Serveur Dell PowerEdge",
		CategoryIT,
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(1_200_000), 3, nil,
	)
	require.NoError(t, err)
	return asset
}

func TestNewFixedAsset(t *testing.T) {
	t.Run("creates active asset with code", func(t *testing.T) {
		asset := createTestAsset(t)
		assert.Equal(t, "IT0001", asset.Code)
		assert.Equal(t, StatusActive, asset.Status)
		assert.Equal(t, "400000", asset.AnnualDotation().String())
		assert.Equal(t, "33.33", asset.DepreciationRate().String())
	})

	t.Run("zero life falls back to category standard", func(t *testing.T) {
		asset, err := NewFixedAsset("VH0001", "Toyota Hilux", CategoryVehicle,
			time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(15_000_000), 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 5, asset.UsefulLifeYears)
	})

	t.Run("rejects non-positive value", func(t *testing.T) {
		_, err := NewFixedAsset("IT0002", "Écran", CategoryIT, time.Now(), decimal.Zero, 3, nil)
		assert.Error(t, err)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewFixedAsset("XX0001", "Divers", Category("terrain"), time.Now(), decimal.NewFromInt(100), 3, nil)
		assert.Error(t, err)
	})
}

func TestCategoryDefaults(t *testing.T) {
	assert.Equal(t, 3, CategoryIT.DefaultUsefulLife())
	assert.Equal(t, 5, CategoryVehicle.DefaultUsefulLife())
	assert.Equal(t, 10, CategoryFurniture.DefaultUsefulLife())
	assert.Equal(t, 20, CategoryBuilding.DefaultUsefulLife())
	assert.Equal(t, "MB0012", FormatAssetCode(CategoryFurniture, 12))
}

func TestComputeDepreciation(t *testing.T) {
	fiscalYearID := uuid.New()

	t.Run("first year is pro-rated by remaining months", func(t *testing.T) {
		asset := createTestAsset(t)
		// Acquired July 2025: 6 of 12 months held.
		line, err := asset.ComputeDepreciation(fiscalYearID, 2025)
		require.NoError(t, err)
		assert.Equal(t, "200000", line.Dotation.String())
		assert.Equal(t, "200000", line.Cumulative.String())
		assert.Equal(t, "1000000", line.NetBookValue.String())
	})

	t.Run("same year twice is a conflict and changes nothing", func(t *testing.T) {
		asset := createTestAsset(t)
		_, err := asset.ComputeDepreciation(fiscalYearID, 2025)
		require.NoError(t, err)
		before := asset.CumulativeDepreciation()

		_, err = asset.ComputeDepreciation(fiscalYearID, 2025)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already computed")
		assert.True(t, asset.CumulativeDepreciation().Equal(before))
		assert.Len(t, asset.DepreciationLines, 1)
	})

	t.Run("subsequent years take the full dotation", func(t *testing.T) {
		asset := createTestAsset(t)
		_, err := asset.ComputeDepreciation(uuid.New(), 2025)
		require.NoError(t, err)
		line, err := asset.ComputeDepreciation(uuid.New(), 2026)
		require.NoError(t, err)
		assert.Equal(t, "400000", line.Dotation.String())
		assert.Equal(t, "600000", line.Cumulative.String())
	})

	t.Run("cumulative never exceeds acquisition value", func(t *testing.T) {
		asset := createTestAsset(t)
		for year := 2025; year <= 2028; year++ {
			_, err := asset.ComputeDepreciation(uuid.New(), year)
			require.NoError(t, err)
		}
		assert.True(t, asset.CumulativeDepreciation().LessThanOrEqual(asset.AcquisitionValue))
		assert.True(t, asset.NetBookValue().GreaterThanOrEqual(decimal.Zero))
	})

	t.Run("disposed asset refuses depreciation", func(t *testing.T) {
		asset := createTestAsset(t)
		require.NoError(t, asset.Dispose(time.Now(), StatusScrapped, nil))
		_, err := asset.ComputeDepreciation(fiscalYearID, 2025)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not active")
	})
}

func TestDispose(t *testing.T) {
	t.Run("sale records value and date", func(t *testing.T) {
		asset := createTestAsset(t)
		saleValue := decimal.NewFromInt(300000)
		require.NoError(t, asset.Dispose(time.Date(2027, 5, 2, 0, 0, 0, 0, time.UTC), StatusSold, &saleValue))
		assert.Equal(t, StatusSold, asset.Status)
		require.NotNil(t, asset.DisposalValue)
		assert.False(t, asset.CanDispose())
	})

	t.Run("re-disposal fails", func(t *testing.T) {
		asset := createTestAsset(t)
		require.NoError(t, asset.Dispose(time.Now(), StatusScrapped, nil))
		err := asset.Dispose(time.Now(), StatusSold, nil)
		require.Error(t, err)
		assert.Equal(t, StatusScrapped, asset.Status)
	})

	t.Run("reason must be cede or rebut", func(t *testing.T) {
		asset := createTestAsset(t)
		assert.Error(t, asset.Dispose(time.Now(), StatusActive, nil))
	})
}
