package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	appreport "github.com/ongcompta/backend/internal/application/report"
)

// ReportHandler exposes financial reports, Excel exports and alerts
type ReportHandler struct {
	BaseHandler
	reports *appreport.ReportService
	exports *appreport.ExportService
	alerts  *appreport.AlertService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(
	reports *appreport.ReportService,
	exports *appreport.ExportService,
	alerts *appreport.AlertService,
) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports, alerts: alerts}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.TrialBalance)
		reports.GET("/trial-balance/export", h.ExportTrialBalance)
		reports.GET("/budget-vs-actual/:projectID", h.BudgetVsActual)
		reports.GET("/budget-vs-actual/:projectID/export", h.ExportBudgetVsActual)
		reports.GET("/financial-statements", h.FinancialStatements)
		reports.GET("/reconciliation", h.Reconciliation)
	}
	rg.GET("/alerts", h.Alerts)
}

// yearParam parses the mandatory year query parameter
func yearParam(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Query("year"))
}

// TrialBalance returns the trial balance of a fiscal year
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	year, err := yearParam(c)
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	includeUnvalidated, _ := strconv.ParseBool(c.Query("include_unvalidated"))

	resp, err := h.reports.TrialBalance(c.Request.Context(), year, includeUnvalidated)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExportTrialBalance streams the trial balance as an Excel workbook
func (h *ReportHandler) ExportTrialBalance(c *gin.Context) {
	year, err := yearParam(c)
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	includeUnvalidated, _ := strconv.ParseBool(c.Query("include_unvalidated"))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="balance-%d.xlsx"`, year))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := h.exports.ExportTrialBalance(c.Request.Context(), year, includeUnvalidated, c.Writer); err != nil {
		h.HandleError(c, err)
		return
	}
}

// BudgetVsActual compares planned budget against realized expenses
func (h *ReportHandler) BudgetVsActual(c *gin.Context) {
	projectID, ok := parseParamID(c, "projectID")
	if !ok {
		return
	}
	var year *int
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
		year = &y
	}

	resp, err := h.reports.BudgetVsActual(c.Request.Context(), projectID, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExportBudgetVsActual streams the comparison as an Excel workbook
func (h *ReportHandler) ExportBudgetVsActual(c *gin.Context) {
	projectID, ok := parseParamID(c, "projectID")
	if !ok {
		return
	}
	var year *int
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
		year = &y
	}

	c.Header("Content-Disposition", `attachment; filename="budget-vs-actual.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := h.exports.ExportBudgetVsActual(c.Request.Context(), projectID, year, c.Writer); err != nil {
		h.HandleError(c, err)
		return
	}
}

// FinancialStatements returns the simplified SYSCOHADA statements
func (h *ReportHandler) FinancialStatements(c *gin.Context) {
	year, err := yearParam(c)
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.reports.FinancialStatements(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reconciliation compares general and analytical totals per project
func (h *ReportHandler) Reconciliation(c *gin.Context) {
	year, err := yearParam(c)
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.reports.Reconciliation(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Alerts recomputes and returns the active dashboard alerts
func (h *ReportHandler) Alerts(c *gin.Context) {
	resp, err := h.alerts.ActiveAlerts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
