package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// withBudgetLines preloads the owned budget line collections
func withBudgetLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("BudgetLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("budget_lines.position ASC")
		}).
		Preload("BudgetLines.Years", func(db *gorm.DB) *gorm.DB {
			return db.Order("budget_years.year ASC")
		})
}

// FindByID finds a project with its budget lines
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Project, error) {
	var m models.ProjectModel
	if err := withBudgetLines(session(ctx, r.db)).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCode finds a project by its unique code
func (r *GormProjectRepository) FindByCode(ctx context.Context, code string) (*budget.Project, error) {
	var m models.ProjectModel
	if err := withBudgetLines(session(ctx, r.db)).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds projects matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, filter budget.ProjectFilter) ([]budget.Project, error) {
	var ms []models.ProjectModel
	query := r.applyFilter(withBudgetLines(session(ctx, r.db)).Model(&models.ProjectModel{}), filter)
	query = applyListOptions(query, filter.Filter, ProjectSortFields, "code")

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainProjects(ms), nil
}

// FindActive lists projects with status actif
func (r *GormProjectRepository) FindActive(ctx context.Context) ([]budget.Project, error) {
	var ms []models.ProjectModel
	if err := withBudgetLines(session(ctx, r.db)).
		Where("status = ?", string(budget.ProjectActive)).
		Order("code ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainProjects(ms), nil
}

// FindBudgetLineByID finds one budget line with its year breakdown
func (r *GormProjectRepository) FindBudgetLineByID(ctx context.Context, id uuid.UUID) (*budget.BudgetLine, error) {
	var m models.BudgetLineModel
	if err := session(ctx, r.db).
		Preload("Years", func(db *gorm.DB) *gorm.DB {
			return db.Order("budget_years.year ASC")
		}).
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	line := m.ToDomain()
	return &line, nil
}

// Save creates or updates a project. Budget lines and their year
// breakdowns are owned rows wiped and rewritten on every save.
func (r *GormProjectRepository) Save(ctx context.Context, project *budget.Project) error {
	m := models.ProjectModelFromDomain(project)
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("BudgetLines").Save(&m).Error; err != nil {
			return err
		}
		if err := deleteOwnedBudgetLines(tx, m.ID); err != nil {
			return err
		}
		if len(m.BudgetLines) > 0 {
			if err := tx.Create(&m.BudgetLines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a project, cascading to budget lines
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := session(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteOwnedBudgetLines(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.ProjectModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// deleteOwnedBudgetLines removes the budget lines of a project and
// their year breakdowns
func deleteOwnedBudgetLines(tx *gorm.DB, projectID uuid.UUID) error {
	lineIDs := tx.Model(&models.BudgetLineModel{}).Select("id").Where("project_id = ?", projectID)
	if err := tx.Where("budget_line_id IN (?)", lineIDs).Delete(&models.BudgetYearModel{}).Error; err != nil {
		return err
	}
	return tx.Where("project_id = ?", projectID).Delete(&models.BudgetLineModel{}).Error
}

// ExistsByCode checks if a project code is already taken
func (r *GormProjectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.ProjectModel{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, filter budget.ProjectFilter) (int64, error) {
	var count int64
	query := r.applyFilter(session(ctx, r.db).Model(&models.ProjectModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies project filter options without pagination
func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter budget.ProjectFilter) *gorm.DB {
	if filter.DonorID != nil {
		query = query.Where("donor_id = ?", *filter.DonorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ?", pattern, pattern)
	}
	return query
}

// toDomainProjects converts a model slice to domain projects
func toDomainProjects(ms []models.ProjectModel) []budget.Project {
	projects := make([]budget.Project, len(ms))
	for i := range ms {
		projects[i] = *ms[i].ToDomain()
	}
	return projects
}

// Ensure GormProjectRepository implements ProjectRepository
var _ budget.ProjectRepository = (*GormProjectRepository)(nil)
