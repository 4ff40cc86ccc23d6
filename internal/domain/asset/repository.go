package asset

import (
	"context"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// Filter defines filtering options for asset queries
type Filter struct {
	shared.Filter
	Category  *Category
	Status    *Status
	ProjectID *uuid.UUID
}

// Repository defines the interface for fixed-asset persistence.
// Depreciation lines are an owned child collection persisted with the
// aggregate; the (asset, year) uniqueness is also enforced by the store.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FixedAsset, error)
	FindByCode(ctx context.Context, code string) (*FixedAsset, error)
	FindAll(ctx context.Context, filter Filter) ([]FixedAsset, error)

	// FindActive lists assets still being depreciated
	FindActive(ctx context.Context) ([]FixedAsset, error)

	Save(ctx context.Context, asset *FixedAsset) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}
