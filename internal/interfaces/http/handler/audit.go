package handler

import (
	"github.com/gin-gonic/gin"
	appaudit "github.com/ongcompta/backend/internal/application/audit"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/interfaces/http/dto"
)

// AuditHandler exposes the read side of the audit trail
type AuditHandler struct {
	BaseHandler
	service *appaudit.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service *appaudit.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit", h.List)
	rg.GET("/audit/:table/:id", h.History)
}

// List lists audit records, newest first
func (h *AuditHandler) List(c *gin.Context) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, err)
		return
	}
	filter := audit.Filter{Filter: list.ToFilter()}
	filter.Table = c.Query("table")
	filter.Actor = c.Query("actor")

	var parseErr error
	filter.RecordID = queryUUID(c, "record_id", &parseErr)
	if parseErr != nil {
		h.BadRequest(c, parseErr)
		return
	}

	resp, err := h.service.ListRecords(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// History returns the full change history of one record, oldest first
func (h *AuditHandler) History(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.RecordHistory(c.Request.Context(), c.Param("table"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
