package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appfinancing "github.com/ongcompta/backend/internal/application/financing"
	"github.com/ongcompta/backend/internal/domain/financing"
	"github.com/ongcompta/backend/internal/interfaces/http/dto"
)

// FinancingHandler exposes donor financing commitments and tranches
type FinancingHandler struct {
	BaseHandler
	service *appfinancing.FinancingService
}

// NewFinancingHandler creates a new FinancingHandler
func NewFinancingHandler(service *appfinancing.FinancingService) *FinancingHandler {
	return &FinancingHandler{service: service}
}

// RegisterRoutes registers financing routes
func (h *FinancingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	financings := rg.Group("/financings")
	{
		financings.POST("", h.Create)
		financings.GET("", h.List)
		financings.GET("/:id", h.Get)
		financings.DELETE("/:id", h.Delete)
		financings.POST("/:id/close", h.Close)
		financings.POST("/:id/cancel", h.Cancel)
		financings.POST("/:id/tranches", h.AddTranche)
		financings.POST("/:id/tranches/:trancheID/receive", h.ReceiveTranche)
		financings.DELETE("/:id/tranches/:trancheID", h.RemoveTranche)
	}
}

// Create records a financing commitment
func (h *FinancingHandler) Create(c *gin.Context) {
	var req appfinancing.CreateFinancingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateFinancing(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// AddTranche schedules an installment
func (h *FinancingHandler) AddTranche(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appfinancing.AddTrancheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.AddTranche(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ReceiveTranche records the reception of an installment
func (h *FinancingHandler) ReceiveTranche(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	trancheID, ok := parseParamID(c, "trancheID")
	if !ok {
		return
	}
	var req appfinancing.ReceiveTrancheRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err)
			return
		}
	}
	req.Actor = actor(c)

	resp, err := h.service.ReceiveTranche(c.Request.Context(), id, trancheID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveTranche drops an installment that was never received
func (h *FinancingHandler) RemoveTranche(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	trancheID, ok := parseParamID(c, "trancheID")
	if !ok {
		return
	}
	resp, err := h.service.RemoveTranche(c.Request.Context(), id, trancheID, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a financing without received funds
func (h *FinancingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteFinancing(c.Request.Context(), id, actor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Close marks a financing as fully settled
func (h *FinancingHandler) Close(c *gin.Context) {
	h.transition(c, h.service.CloseFinancing)
}

// Cancel cancels a financing
func (h *FinancingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.CancelFinancing)
}

// transition runs one financing status change
func (h *FinancingHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID, string) (*appfinancing.FinancingResponse, error)) {
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

// Get returns one financing with its tranches
func (h *FinancingHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetFinancing(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists financings with pagination and filters
func (h *FinancingHandler) List(c *gin.Context) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, err)
		return
	}
	filter := financing.Filter{Filter: list.ToFilter()}

	var parseErr error
	filter.DonorID = queryUUID(c, "donor_id", &parseErr)
	filter.ProjectID = queryUUID(c, "project_id", &parseErr)
	if parseErr != nil {
		h.BadRequest(c, parseErr)
		return
	}
	if v := c.Query("status"); v != "" {
		status := financing.Status(v)
		filter.Status = &status
	}

	page, err := h.service.ListFinancings(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}
