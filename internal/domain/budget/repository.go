package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/shared"
)

// ProjectFilter defines filtering options for project queries
type ProjectFilter struct {
	shared.Filter
	DonorID *uuid.UUID
	Status  *ProjectStatus
}

// ProjectRepository defines the interface for project persistence.
// Budget lines and their per-year amounts are owned child collections:
// Save persists the whole aggregate and Delete cascades.
type ProjectRepository interface {
	// FindByID finds a project with its budget lines
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindByCode finds a project by its unique code
	FindByCode(ctx context.Context, code string) (*Project, error)

	// FindAll finds projects matching the filter
	FindAll(ctx context.Context, filter ProjectFilter) ([]Project, error)

	// FindActive lists projects with status actif
	FindActive(ctx context.Context) ([]Project, error)

	// FindBudgetLineByID finds one budget line with its year breakdown
	FindBudgetLineByID(ctx context.Context, id uuid.UUID) (*BudgetLine, error)

	// Save creates or updates a project with its budget lines
	Save(ctx context.Context, project *Project) error

	// Delete removes a project, cascading to budget lines
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByCode checks if a project code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Count counts projects matching the filter
	Count(ctx context.Context, filter ProjectFilter) (int64, error)
}

// DonorRepository defines the interface for donor persistence
type DonorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Donor, error)
	FindByCode(ctx context.Context, code string) (*Donor, error)
	FindAll(ctx context.Context) ([]Donor, error)
	Save(ctx context.Context, donor *Donor) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// BudgetCategoryRepository defines the interface for category persistence
type BudgetCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BudgetCategory, error)
	FindAll(ctx context.Context) ([]BudgetCategory, error)
	Save(ctx context.Context, category *BudgetCategory) error
}
