package handler

import (
	"github.com/gin-gonic/gin"
	appaccounting "github.com/ongcompta/backend/internal/application/accounting"
)

// FxHandler exposes currencies and their monthly exchange rates
type FxHandler struct {
	BaseHandler
	service *appaccounting.FxService
}

// NewFxHandler creates a new FxHandler
func NewFxHandler(service *appaccounting.FxService) *FxHandler {
	return &FxHandler{service: service}
}

// RegisterRoutes registers currency and rate routes
func (h *FxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.CreateCurrency)
		currencies.GET("", h.ListCurrencies)
		currencies.GET("/:code/rates", h.ListRates)
	}
	rg.PUT("/rates", h.UpsertRate)
}

// CreateCurrency registers a currency
func (h *FxHandler) CreateCurrency(c *gin.Context) {
	var req appaccounting.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateCurrency(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCurrencies lists registered currencies
func (h *FxHandler) ListCurrencies(c *gin.Context) {
	resp, err := h.service.ListCurrencies(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpsertRate sets the rate of a currency for one month
func (h *FxHandler) UpsertRate(c *gin.Context) {
	var req appaccounting.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.UpsertMonthlyRate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListRates lists the monthly rates of a currency, newest first
func (h *FxHandler) ListRates(c *gin.Context) {
	resp, err := h.service.ListRates(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
