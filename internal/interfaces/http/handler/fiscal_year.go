package handler

import (
	"github.com/gin-gonic/gin"
	appaccounting "github.com/ongcompta/backend/internal/application/accounting"
)

// FiscalYearHandler exposes fiscal year management
type FiscalYearHandler struct {
	BaseHandler
	service *appaccounting.FiscalYearService
}

// NewFiscalYearHandler creates a new FiscalYearHandler
func NewFiscalYearHandler(service *appaccounting.FiscalYearService) *FiscalYearHandler {
	return &FiscalYearHandler{service: service}
}

// RegisterRoutes registers fiscal year routes
func (h *FiscalYearHandler) RegisterRoutes(rg *gin.RouterGroup) {
	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.Create)
		years.GET("", h.List)
		years.GET("/open", h.FindOpen)
		years.GET("/:id", h.Get)
		years.POST("/:id/close", h.Close)
	}
}

// Create opens a fiscal year
func (h *FiscalYearHandler) Create(c *gin.Context) {
	var req appaccounting.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateFiscalYear(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Close closes a fiscal year and reports its result
func (h *FiscalYearHandler) Close(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appaccounting.CloseFiscalYearRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err)
			return
		}
	}
	req.Actor = actor(c)

	resp, err := h.service.CloseFiscalYear(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one fiscal year
func (h *FiscalYearHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetFiscalYear(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// FindOpen returns the currently open fiscal year
func (h *FiscalYearHandler) FindOpen(c *gin.Context) {
	resp, err := h.service.FindOpenFiscalYear(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists all fiscal years
func (h *FiscalYearHandler) List(c *gin.Context) {
	resp, err := h.service.ListFiscalYears(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
