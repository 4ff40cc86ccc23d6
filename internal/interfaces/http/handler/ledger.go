package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/ongcompta/backend/internal/application/ledger"
	"github.com/ongcompta/backend/internal/domain/ledger"
	"github.com/ongcompta/backend/internal/interfaces/http/dto"
)

// LedgerHandler exposes entries, guided entry forms, bulk validation
// and balance queries
type LedgerHandler struct {
	BaseHandler
	service    *appledger.LedgerService
	allocation *appledger.AllocationService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(service *appledger.LedgerService, allocation *appledger.AllocationService) *LedgerHandler {
	return &LedgerHandler{service: service, allocation: allocation}
}

// RegisterRoutes registers entry routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/entries")
	{
		entries.POST("", h.Create)
		entries.POST("/simple", h.CreateSimple)
		entries.POST("/payroll", h.CreatePayroll)
		entries.POST("/validate", h.BulkValidate)
		entries.GET("", h.List)
		entries.GET("/:id", h.Get)
		entries.PUT("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
		entries.POST("/:id/validate", h.Validate)
		entries.POST("/:id/invalidate", h.Invalidate)
		entries.POST("/:id/duplicate", h.Duplicate)
	}
	lines := rg.Group("/lines")
	{
		lines.PUT("/:id/allocations", h.AllocateLine)
		lines.GET("/:id/allocations", h.ListLineAllocations)
	}
	rg.POST("/balances", h.AccountBalance)
}

// Create creates a balanced entry
func (h *LedgerHandler) Create(c *gin.Context) {
	var req appledger.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateSimple creates a two-line entry from a guided form
func (h *LedgerHandler) CreateSimple(c *gin.Context) {
	var req appledger.SimpleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreateSimpleEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreatePayroll creates a monthly payroll entry
func (h *LedgerHandler) CreatePayroll(c *gin.Context) {
	var req appledger.PayrollEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.CreatePayrollEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update edits a draft entry, replacing its lines
func (h *LedgerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appledger.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.EditEntry(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a draft entry
func (h *LedgerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteEntry(c.Request.Context(), id, actor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Validate locks an entry
func (h *LedgerHandler) Validate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.ValidateEntry(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Invalidate reverts a validated entry to draft
func (h *LedgerHandler) Invalidate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.InvalidateEntry(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BulkValidateRequest names the entries to validate in one batch
type BulkValidateRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// BulkValidate validates a batch of entries, reporting per-entry
// failures without aborting the batch
func (h *LedgerHandler) BulkValidate(c *gin.Context) {
	var req BulkValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.BulkValidate(c.Request.Context(), req.IDs, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Duplicate copies an entry as a fresh draft with a new number
func (h *LedgerHandler) Duplicate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.DuplicateEntry(c.Request.Context(), id, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one entry with its lines
func (h *LedgerHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists entries with pagination and filters
func (h *LedgerHandler) List(c *gin.Context) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, err)
		return
	}
	filter := ledger.EntryFilter{Filter: list.ToFilter()}

	var parseErr error
	filter.JournalID = queryUUID(c, "journal_id", &parseErr)
	filter.FiscalYearID = queryUUID(c, "fiscal_year_id", &parseErr)
	filter.AccountID = queryUUID(c, "account_id", &parseErr)
	filter.ProjectID = queryUUID(c, "project_id", &parseErr)
	filter.FromDate = queryDate(c, "from", &parseErr)
	filter.ToDate = queryDate(c, "to", &parseErr)
	if v := c.Query("validated"); v != "" {
		validated, err := strconv.ParseBool(v)
		if err != nil {
			parseErr = err
		}
		filter.Validated = &validated
	}
	if parseErr != nil {
		h.BadRequest(c, parseErr)
		return
	}

	page, err := h.service.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// AccountBalance computes the debit/credit rollup of one account
func (h *LedgerHandler) AccountBalance(c *gin.Context) {
	var req appledger.AccountBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.AccountBalance(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AllocateLine replaces the analytical allocation set of a line
func (h *LedgerHandler) AllocateLine(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appledger.AllocateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.allocation.AllocateLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListLineAllocations lists the allocations of a line
func (h *LedgerHandler) ListLineAllocations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.allocation.ListLineAllocations(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// queryUUID parses an optional UUID query parameter, recording the
// first parse failure in errOut
func queryUUID(c *gin.Context, name string, errOut *error) *uuid.UUID {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		if *errOut == nil {
			*errOut = err
		}
		return nil
	}
	return &id
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *gin.Context, name string, errOut *error) *time.Time {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		if *errOut == nil {
			*errOut = err
		}
		return nil
	}
	return &t
}
