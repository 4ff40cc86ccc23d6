package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbudget "github.com/ongcompta/backend/internal/application/budget"
	"github.com/ongcompta/backend/internal/domain/budget"
	"github.com/ongcompta/backend/internal/interfaces/http/dto"
)

// ProjectHandler exposes projects, donors and budget categories
type ProjectHandler struct {
	BaseHandler
	service *appbudget.ProjectService
	donors  *appbudget.DonorService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(service *appbudget.ProjectService, donors *appbudget.DonorService) *ProjectHandler {
	return &ProjectHandler{service: service, donors: donors}
}

// RegisterRoutes registers project, donor and category routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.POST("", h.Create)
		projects.GET("", h.List)
		projects.GET("/:id", h.Get)
		projects.PUT("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
		projects.POST("/:id/suspend", h.Suspend)
		projects.POST("/:id/resume", h.Resume)
		projects.POST("/:id/close", h.Close)
		projects.POST("/:id/budget-lines", h.AddBudgetLine)
		projects.PUT("/:id/budget-lines/:lineID/years", h.SetBudgetYear)
	}
	donors := rg.Group("/donors")
	{
		donors.POST("", h.CreateDonor)
		donors.GET("", h.ListDonors)
	}
	categories := rg.Group("/budget-categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
	}
}

// Create creates a project
func (h *ProjectHandler) Create(c *gin.Context) {
	var req appbudget.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateProject(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update updates project metadata
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appbudget.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.UpdateProject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Suspend pauses an active project
func (h *ProjectHandler) Suspend(c *gin.Context) {
	h.transition(c, h.service.SuspendProject)
}

// Resume reactivates a suspended project
func (h *ProjectHandler) Resume(c *gin.Context) {
	h.transition(c, h.service.ResumeProject)
}

// Close closes a project
func (h *ProjectHandler) Close(c *gin.Context) {
	h.transition(c, h.service.CloseProject)
}

// transition runs one project status change
func (h *ProjectHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID, string) (*appbudget.ProjectResponse, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := apply(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a project without bookings
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteProject(c.Request.Context(), id, actor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddBudgetLine adds a budget line to a project
func (h *ProjectHandler) AddBudgetLine(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appbudget.AddBudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.AddBudgetLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SetBudgetYear sets the planned amount of a budget line for one year
func (h *ProjectHandler) SetBudgetYear(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lineID, ok := parseParamID(c, "lineID")
	if !ok {
		return
	}
	var req appbudget.SetBudgetYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.SetBudgetYear(c.Request.Context(), id, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one project with its budget lines
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists projects with pagination and filters
func (h *ProjectHandler) List(c *gin.Context) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, err)
		return
	}
	filter := budget.ProjectFilter{Filter: list.ToFilter()}

	var parseErr error
	filter.DonorID = queryUUID(c, "donor_id", &parseErr)
	if parseErr != nil {
		h.BadRequest(c, parseErr)
		return
	}
	if v := c.Query("status"); v != "" {
		status := budget.ProjectStatus(v)
		filter.Status = &status
	}

	page, err := h.service.ListProjects(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// CreateDonor registers a donor
func (h *ProjectHandler) CreateDonor(c *gin.Context) {
	var req appbudget.CreateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.donors.CreateDonor(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListDonors lists donors
func (h *ProjectHandler) ListDonors(c *gin.Context) {
	resp, err := h.donors.ListDonors(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateCategory creates a budget category
func (h *ProjectHandler) CreateCategory(c *gin.Context) {
	var req appbudget.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.donors.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCategories lists budget categories in display order
func (h *ProjectHandler) ListCategories(c *gin.Context) {
	resp, err := h.donors.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
