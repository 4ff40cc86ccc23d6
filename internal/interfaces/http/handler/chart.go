package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	appaccounting "github.com/ongcompta/backend/internal/application/accounting"
	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/interfaces/http/dto"
)

// ChartHandler exposes the chart of accounts and the journal list
type ChartHandler struct {
	BaseHandler
	service *appaccounting.ChartService
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(service *appaccounting.ChartService) *ChartHandler {
	return &ChartHandler{service: service}
}

// RegisterRoutes registers chart-of-accounts routes
func (h *ChartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.POST("/treasury", h.CreateTreasuryAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/treasury", h.ListTreasuryAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.PUT("/:id", h.UpdateAccount)
	}
	journals := rg.Group("/journals")
	{
		journals.POST("", h.CreateJournal)
		journals.GET("", h.ListJournals)
		journals.DELETE("/:id", h.DeleteJournal)
	}
}

// CreateAccount creates a chart-of-accounts node
func (h *ChartHandler) CreateAccount(c *gin.Context) {
	var req appaccounting.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateTreasuryAccount creates a class-5 account with treasury detail
func (h *ChartHandler) CreateTreasuryAccount(c *gin.Context) {
	var req appaccounting.CreateTreasuryAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateTreasuryAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateAccount relabels or toggles an account
func (h *ChartHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appaccounting.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetAccount returns one account
func (h *ChartHandler) GetAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListAccounts lists accounts, optionally filtered by class, prefix or
// active flag
func (h *ChartHandler) ListAccounts(c *gin.Context) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, err)
		return
	}
	filter := accounting.AccountFilter{Filter: list.ToFilter()}
	filter.NumberPrefix = c.Query("prefix")
	if v := c.Query("class"); v != "" {
		class, err := strconv.Atoi(v)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
		ac := accounting.AccountClass(class)
		filter.Class = &ac
	}
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
		filter.Active = &active
	}

	resp, err := h.service.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListTreasuryAccounts lists active class-5 accounts with their detail
func (h *ChartHandler) ListTreasuryAccounts(c *gin.Context) {
	resp, err := h.service.ListTreasuryAccounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateJournal creates a journal
func (h *ChartHandler) CreateJournal(c *gin.Context) {
	var req appaccounting.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateJournal(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListJournals lists all journals
func (h *ChartHandler) ListJournals(c *gin.Context) {
	resp, err := h.service.ListJournals(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteJournal deletes an unused journal
func (h *ChartHandler) DeleteJournal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteJournal(c.Request.Context(), id, actor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
