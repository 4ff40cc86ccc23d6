package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProjectService manages projects and their budget lines
type ProjectService struct {
	projectRepo  budget.ProjectRepository
	donorRepo    budget.DonorRepository
	categoryRepo budget.BudgetCategoryRepository
	entryRepo    ledger.EntryRepository
	trail        *audit.Trail
	tx           shared.TxManager
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo budget.ProjectRepository,
	donorRepo budget.DonorRepository,
	categoryRepo budget.BudgetCategoryRepository,
	entryRepo ledger.EntryRepository,
	trail *audit.Trail,
	tx shared.TxManager,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		donorRepo:    donorRepo,
		categoryRepo: categoryRepo,
		entryRepo:    entryRepo,
		trail:        trail,
		tx:           tx,
	}
}

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Code        string          `json:"code" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	DonorID     *uuid.UUID      `json:"donor_id"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	Currency    string          `json:"currency"`
	Actor       string          `json:"-"`
}

// UpdateProjectRequest represents a request to update project metadata
type UpdateProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	DonorID     *uuid.UUID      `json:"donor_id"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	Actor       string          `json:"-"`
}

// AddBudgetLineRequest represents a request to add a budget line
type AddBudgetLineRequest struct {
	Code       string          `json:"code" binding:"required"`
	Label      string          `json:"label" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost" binding:"required"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Year       *int            `json:"year"`
	Actor      string          `json:"-"`
}

// SetBudgetYearRequest sets the planned amount of a budget line for one year
type SetBudgetYearRequest struct {
	Year   int             `json:"year" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Actor  string          `json:"-"`
}

// BudgetYearResponse is one year of a budget line breakdown
type BudgetYearResponse struct {
	Year          int             `json:"year"`
	PlannedAmount decimal.Decimal `json:"planned_amount"`
}

// BudgetLineResponse represents a budget line in API responses
type BudgetLineResponse struct {
	ID            uuid.UUID            `json:"id"`
	ProjectID     uuid.UUID            `json:"project_id"`
	CategoryID    *uuid.UUID           `json:"category_id,omitempty"`
	Code          string               `json:"code"`
	Label         string               `json:"label"`
	Year          *int                 `json:"year,omitempty"`
	Quantity      decimal.Decimal      `json:"quantity"`
	UnitCost      decimal.Decimal      `json:"unit_cost"`
	PlannedAmount decimal.Decimal      `json:"planned_amount"`
	Position      int                  `json:"position"`
	Years         []BudgetYearResponse `json:"years,omitempty"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID            `json:"id"`
	Code        string               `json:"code"`
	Name        string               `json:"name"`
	DonorID     *uuid.UUID           `json:"donor_id,omitempty"`
	StartDate   *time.Time           `json:"start_date,omitempty"`
	EndDate     *time.Time           `json:"end_date,omitempty"`
	TotalBudget decimal.Decimal      `json:"total_budget"`
	Currency    string               `json:"currency"`
	Status      budget.ProjectStatus `json:"status"`
	BudgetLines []BudgetLineResponse `json:"budget_lines"`
	CreatedAt   time.Time            `json:"created_at"`
}

// CreateProject creates a project with a unique code
func (s *ProjectService) CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	exists, err := s.projectRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Project code %s is already taken", req.Code))
	}
	if req.DonorID != nil {
		if _, err := s.donorRepo.FindByID(ctx, *req.DonorID); err != nil {
			return nil, err
		}
	}

	project, err := budget.NewProject(req.Code, req.Name, req.DonorID, req.StartDate, req.EndDate,
		req.TotalBudget, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Save(ctx, project); err != nil {
			return err
		}
		return s.trail.Write(ctx, "projects", project.ID, audit.ActionCreate, nil, project, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// UpdateProject updates project metadata; the code is immutable
func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.DonorID != nil {
		if _, err := s.donorRepo.FindByID(ctx, *req.DonorID); err != nil {
			return nil, err
		}
	}
	if req.TotalBudget.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total budget must not be negative")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Project end date must not be before start date")
	}

	before := *project
	project.Name = req.Name
	project.DonorID = req.DonorID
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate
	project.TotalBudget = req.TotalBudget

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Save(ctx, project); err != nil {
			return err
		}
		return s.trail.Write(ctx, "projects", project.ID, audit.ActionUpdate, &before, project, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// SuspendProject pauses a project
func (s *ProjectService) SuspendProject(ctx context.Context, id uuid.UUID, actor string) (*ProjectResponse, error) {
	return s.transition(ctx, id, actor, (*budget.Project).Suspend)
}

// ResumeProject reactivates a suspended project
func (s *ProjectService) ResumeProject(ctx context.Context, id uuid.UUID, actor string) (*ProjectResponse, error) {
	return s.transition(ctx, id, actor, (*budget.Project).Resume)
}

// CloseProject closes a project permanently
func (s *ProjectService) CloseProject(ctx context.Context, id uuid.UUID, actor string) (*ProjectResponse, error) {
	return s.transition(ctx, id, actor, (*budget.Project).Close)
}

func (s *ProjectService) transition(ctx context.Context, id uuid.UUID, actor string, apply func(*budget.Project) error) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *project
	if err := apply(project); err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Save(ctx, project); err != nil {
			return err
		}
		return s.trail.Write(ctx, "projects", project.ID, audit.ActionUpdate, &before, project, actor)
	})
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// DeleteProject removes a project that has no tagged entries
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID, actor string) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.entryRepo.Count(ctx, ledger.EntryFilter{ProjectID: &id})
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("PROJECT_IN_USE",
			fmt.Sprintf("%d entries are tagged with this project", count))
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.trail.Write(ctx, "projects", id, audit.ActionDelete, project, nil, actor)
	})
}

// AddBudgetLine appends a budget line to a project
func (s *ProjectService) AddBudgetLine(ctx context.Context, projectID uuid.UUID, req AddBudgetLineRequest) (*BudgetLineResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	line, err := budget.NewBudgetLine(req.Code, req.Label, req.Quantity, req.UnitCost, req.CategoryID, req.Year)
	if err != nil {
		return nil, err
	}
	project.AddBudgetLine(line)

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Save(ctx, project); err != nil {
			return err
		}
		return s.trail.Write(ctx, "budget_lines", line.ID, audit.ActionCreate, nil, line, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	added := project.BudgetLines[len(project.BudgetLines)-1]
	return toBudgetLineResponse(added), nil
}

// SetBudgetYear upserts the per-year planned amount of a budget line
func (s *ProjectService) SetBudgetYear(ctx context.Context, projectID, lineID uuid.UUID, req SetBudgetYearRequest) (*BudgetLineResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var line *budget.BudgetLine
	for i := range project.BudgetLines {
		if project.BudgetLines[i].ID == lineID {
			line = &project.BudgetLines[i]
			break
		}
	}
	if line == nil {
		return nil, shared.ErrNotFound
	}

	before := *line
	if err := line.SetYearAmount(req.Year, req.Amount); err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Save(ctx, project); err != nil {
			return err
		}
		return s.trail.Write(ctx, "budget_lines", line.ID, audit.ActionUpdate, &before, line, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toBudgetLineResponse(*line), nil
}

// GetProject returns one project with its budget lines
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// ListProjects returns projects matching the filter
func (s *ProjectService) ListProjects(ctx context.Context, filter budget.ProjectFilter) (*shared.Paginated[ProjectResponse], error) {
	projects, err := s.projectRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.projectRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *toProjectResponse(&projects[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func toBudgetLineResponse(line budget.BudgetLine) *BudgetLineResponse {
	years := make([]BudgetYearResponse, len(line.Years))
	for i, y := range line.Years {
		years[i] = BudgetYearResponse{Year: y.Year, PlannedAmount: y.PlannedAmount}
	}
	return &BudgetLineResponse{
		ID:            line.ID,
		ProjectID:     line.ProjectID,
		CategoryID:    line.CategoryID,
		Code:          line.Code,
		Label:         line.Label,
		Year:          line.Year,
		Quantity:      line.Quantity,
		UnitCost:      line.UnitCost,
		PlannedAmount: line.PlannedAmount,
		Position:      line.Position,
		Years:         years,
	}
}

func toProjectResponse(p *budget.Project) *ProjectResponse {
	lines := make([]BudgetLineResponse, len(p.BudgetLines))
	for i, line := range p.BudgetLines {
		lines[i] = *toBudgetLineResponse(line)
	}
	return &ProjectResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		DonorID:     p.DonorID,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		TotalBudget: p.TotalBudget,
		Currency:    string(p.Currency),
		Status:      p.Status,
		BudgetLines: lines,
		CreatedAt:   p.CreatedAt,
	}
}
