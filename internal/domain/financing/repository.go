package financing

import (
	"context"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// Filter defines filtering options for financing queries
type Filter struct {
	shared.Filter
	DonorID   *uuid.UUID
	ProjectID *uuid.UUID
	Status    *Status
}

// Repository defines the interface for financing persistence. Tranches
// are an owned child collection persisted with the aggregate.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Financing, error)
	FindByReference(ctx context.Context, reference string) (*Financing, error)
	FindAll(ctx context.Context, filter Filter) ([]Financing, error)
	Save(ctx context.Context, financing *Financing) error

	// Delete removes a financing and its tranches. Callers must check
	// CanDelete first; implementations refuse regardless.
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByReference(ctx context.Context, reference string) (bool, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}
