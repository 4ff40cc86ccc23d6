package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/domain/shared/valueobject"
)

// DonorService manages donors and budget categories
type DonorService struct {
	donorRepo    budget.DonorRepository
	categoryRepo budget.BudgetCategoryRepository
	trail        *audit.Trail
	tx           shared.TxManager
}

// NewDonorService creates a new DonorService
func NewDonorService(
	donorRepo budget.DonorRepository,
	categoryRepo budget.BudgetCategoryRepository,
	trail *audit.Trail,
	tx shared.TxManager,
) *DonorService {
	return &DonorService{
		donorRepo:    donorRepo,
		categoryRepo: categoryRepo,
		trail:        trail,
		tx:           tx,
	}
}

// CreateDonorRequest represents a request to register a donor
type CreateDonorRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Country  string `json:"country"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
	Actor    string `json:"-"`
}

// DonorResponse represents a donor in API responses
type DonorResponse struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Country  string    `json:"country,omitempty"`
	Contact  string    `json:"contact,omitempty"`
	Email    string    `json:"email,omitempty"`
	Currency string    `json:"currency"`
	Active   bool      `json:"active"`
}

// CreateCategoryRequest represents a request to create a budget category
type CreateCategoryRequest struct {
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Order int    `json:"order"`
	Actor string `json:"-"`
}

// CategoryResponse represents a budget category in API responses
type CategoryResponse struct {
	ID    uuid.UUID `json:"id"`
	Code  string    `json:"code"`
	Name  string    `json:"name"`
	Order int       `json:"order"`
}

// CreateDonor registers a donor with a unique code
func (s *DonorService) CreateDonor(ctx context.Context, req CreateDonorRequest) (*DonorResponse, error) {
	exists, err := s.donorRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Donor code %s is already taken", req.Code))
	}

	donor, err := budget.NewDonor(req.Code, req.Name, req.Country, req.Contact, req.Email,
		valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.donorRepo.Save(ctx, donor); err != nil {
			return err
		}
		return s.trail.Write(ctx, "donors", donor.ID, audit.ActionCreate, nil, donor, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toDonorResponse(donor), nil
}

// ListDonors returns all donors
func (s *DonorService) ListDonors(ctx context.Context) ([]DonorResponse, error) {
	donors, err := s.donorRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]DonorResponse, len(donors))
	for i := range donors {
		responses[i] = *toDonorResponse(&donors[i])
	}
	return responses, nil
}

// CreateCategory creates a reporting category for budget lines
func (s *DonorService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := budget.NewBudgetCategory(req.Code, req.Name, req.Order)
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.categoryRepo.Save(ctx, category); err != nil {
			return err
		}
		return s.trail.Write(ctx, "budget_categories", category.ID, audit.ActionCreate, nil, category, req.Actor)
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories returns all budget categories
func (s *DonorService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *toCategoryResponse(&categories[i])
	}
	return responses, nil
}

func toDonorResponse(d *budget.Donor) *DonorResponse {
	return &DonorResponse{
		ID:       d.ID,
		Code:     d.Code,
		Name:     d.Name,
		Country:  d.Country,
		Contact:  d.Contact,
		Email:    d.Email,
		Currency: string(d.Currency),
		Active:   d.Active,
	}
}

func toCategoryResponse(c *budget.BudgetCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:    c.ID,
		Code:  c.Code,
		Name:  c.Name,
		Order: c.Order,
	}
}
