package advance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// Filter defines filtering options for advance queries
type Filter struct {
	shared.Filter
	Status      *Status
	ProjectID   *uuid.UUID
	Beneficiary string
}

// Repository defines the interface for advance persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Advance, error)
	FindByNumber(ctx context.Context, number string) (*Advance, error)
	FindAll(ctx context.Context, filter Filter) ([]Advance, error)

	// FindOverdue finds pending advances whose due date passed the cutoff
	FindOverdue(ctx context.Context, cutoff time.Time) ([]Advance, error)

	Save(ctx context.Context, adv *Advance) error
	Count(ctx context.Context, filter Filter) (int64, error)
}
