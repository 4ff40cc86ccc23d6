package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appadvance "github.com/ongcompta/backend/internal/application/advance"
	"github.com/ongcompta/backend/internal/domain/advance"
	"github.com/ongcompta/backend/internal/interfaces/http/dto"
	"github.com/ongcompta/backend/internal/interfaces/http/middleware"
)

// AdvanceHandler exposes cash advances to staff
type AdvanceHandler struct {
	BaseHandler
	service *appadvance.AdvanceService
}

// NewAdvanceHandler creates a new AdvanceHandler
func NewAdvanceHandler(service *appadvance.AdvanceService) *AdvanceHandler {
	return &AdvanceHandler{service: service}
}

// RegisterRoutes registers advance routes. Writing off an advance
// against salary is reserved to the director.
func (h *AdvanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	advances := rg.Group("/advances")
	{
		advances.POST("", h.Issue)
		advances.GET("", h.List)
		advances.GET("/overdue", h.ListOverdue)
		advances.GET("/:id", h.Get)
		advances.POST("/:id/justify", h.Justify)
		advances.POST("/:id/deduct", middleware.RequireRole(middleware.RoleDirector), h.Deduct)
	}
}

// Issue issues an advance, optionally with its disbursement entry
func (h *AdvanceHandler) Issue(c *gin.Context) {
	var req appadvance.IssueAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.IssueAdvance(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Justify records the justification of an advance with receipts
func (h *AdvanceHandler) Justify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appadvance.JustifyAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.JustifyAdvance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deduct writes an unjustified advance off against salary
func (h *AdvanceHandler) Deduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.DeductAdvance(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one advance
func (h *AdvanceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetAdvance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists advances with pagination and filters
func (h *AdvanceHandler) List(c *gin.Context) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, err)
		return
	}
	filter := advance.Filter{Filter: list.ToFilter()}
	filter.Beneficiary = c.Query("beneficiary")

	var parseErr error
	filter.ProjectID = queryUUID(c, "project_id", &parseErr)
	if parseErr != nil {
		h.BadRequest(c, parseErr)
		return
	}
	if v := c.Query("status"); v != "" {
		status := advance.Status(v)
		filter.Status = &status
	}

	page, err := h.service.ListAdvances(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// ListOverdue lists pending advances past their due date
func (h *AdvanceHandler) ListOverdue(c *gin.Context) {
	resp, err := h.service.ListOverdueAdvances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
