package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salesboard/backend/internal/application/export"
)

// serveWorkbook streams a generated workbook as an attachment
func (h *ReportHandler) serveWorkbook(c *gin.Context, prefix string, table *export.Table) {
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", "attachment; filename="+export.FileName(prefix, time.Now()))
	if err := table.Write(c.Writer); err != nil {
		h.InternalError(c, "Failed to write workbook")
	}
}

// ExportSalesHistory downloads the filtered ledger rows as a workbook
func (h *ReportHandler) ExportSalesHistory(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, err := h.reportService.SalesHistory(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.serveWorkbook(c, "sales-history", export.SalesHistoryTable(history))
}

// ExportDailySummary downloads per-day totals as a workbook
func (h *ReportHandler) ExportDailySummary(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.DailySummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.serveWorkbook(c, "daily-summary", export.DailySummaryTable(summary))
}

// ExportExecutiveSummary downloads per-executive totals as a workbook
func (h *ReportHandler) ExportExecutiveSummary(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.ExecutiveSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.serveWorkbook(c, "executive-summary", export.ExecutiveSummaryTable(summary))
}

// ExportCommissionSummary downloads per-executive commissions as a workbook
func (h *ReportHandler) ExportCommissionSummary(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.CommissionSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.serveWorkbook(c, "commission-summary", export.CommissionSummaryTable(summary))
}

// ExportCustomerOutstanding downloads the outstanding ranking as a workbook
func (h *ReportHandler) ExportCustomerOutstanding(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ranked, err := h.reportService.CustomerOutstanding(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.serveWorkbook(c, "customer-outstanding", export.CustomerOutstandingTable(ranked))
}
