package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/salesboard/backend/internal/application/report"
)

// ReportHandler handles report-related API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes mounts the report endpoints under /reports
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")

	reports.GET("/overview", h.GetOverview)
	reports.GET("/dimensions", h.GetDimensions)

	reports.GET("/sales/history", h.GetSalesHistory)
	reports.GET("/sales/daily", h.GetDailySummary)

	reports.GET("/executives/summary", h.GetExecutiveSummary)
	reports.GET("/executives/daily", h.GetDateExecutiveSummary)
	reports.GET("/executives/transactions", h.GetExecutiveTransactions)
	reports.GET("/executives/customers", h.GetExecutiveCustomers)
	reports.GET("/executives/customers/outstanding", h.GetExecutiveCustomerOutstanding)
	reports.GET("/executives/monthly-trend", h.GetMonthlyExecutiveTrend)
	reports.GET("/executives/commissions", h.GetCommissionSummary)

	reports.GET("/customers/outstanding", h.GetCustomerOutstanding)
	reports.GET("/customers/transactions", h.GetCustomerTransactions)
	reports.GET("/customers/daily", h.GetCustomerDailySummary)
	reports.GET("/customers/monthly-trend", h.GetTopCustomerTrend)

	reports.GET("/categories/summary", h.GetCategorySummary)
	reports.GET("/categories/transactions", h.GetCategoryTransactions)

	export := reports.Group("/export")
	export.GET("/sales/history", h.ExportSalesHistory)
	export.GET("/sales/daily", h.ExportDailySummary)
	export.GET("/executives/summary", h.ExportExecutiveSummary)
	export.GET("/executives/commissions", h.ExportCommissionSummary)
	export.GET("/customers/outstanding", h.ExportCustomerOutstanding)
}

// ReportFilterRequest defines the shared query filter for report endpoints
type ReportFilterRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Executive string `form:"executive"`
	Customer  string `form:"customer"`
	TopN      int    `form:"top_n" binding:"omitempty,min=1,max=1000"`
}

// bindFilter parses and validates the report filter from the query string
func (h *ReportHandler) bindFilter(c *gin.Context) (reportapp.ReportFilter, error) {
	var req ReportFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return reportapp.ReportFilter{}, err
	}

	filter := reportapp.ReportFilter{
		Executive: req.Executive,
		Customer:  req.Customer,
		TopN:      req.TopN,
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return filter, errors.New("start_date: Invalid date format, expected YYYY-MM-DD")
		}
		filter.StartDate = &start
	}

	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return filter, errors.New("end_date: Invalid date format, expected YYYY-MM-DD")
		}
		// Widen to end of day so intraday timestamps stay inside the range
		end = end.Add(24*time.Hour - time.Second)
		filter.EndDate = &end
	}

	// customer_type distinguishes absent (no constraint) from explicitly
	// empty (match nothing), so it bypasses struct binding.
	if types, ok := c.GetQueryArray("customer_type"); ok {
		selected := make([]string, 0, len(types))
		for _, ct := range types {
			if ct != "" {
				selected = append(selected, ct)
			}
		}
		filter.CustomerTypes = selected
	}

	return filter, nil
}

// GetOverview returns the dashboard overview
func (h *ReportHandler) GetOverview(c *gin.Context) {
	overview, err := h.reportService.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// GetDimensions returns the distinct filter values the ledger offers
func (h *ReportHandler) GetDimensions(c *gin.Context) {
	dims, err := h.reportService.Dimensions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dims)
}

// GetSalesHistory returns filtered ledger rows with totals
func (h *ReportHandler) GetSalesHistory(c *gin.Context) {
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
	h.Success(c, history)
}

// GetDailySummary returns per-day aggregated totals
func (h *ReportHandler) GetDailySummary(c *gin.Context) {
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
	h.Success(c, summary)
}

// GetExecutiveSummary returns per-executive aggregated totals
func (h *ReportHandler) GetExecutiveSummary(c *gin.Context) {
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
	h.Success(c, summary)
}

// GetDateExecutiveSummary returns day-by-executive aggregated totals
func (h *ReportHandler) GetDateExecutiveSummary(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.DateExecutiveSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetExecutiveTransactions returns the ledger rows of one executive
func (h *ReportHandler) GetExecutiveTransactions(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, err := h.reportService.ExecutiveTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// GetExecutiveCustomers returns per-customer totals for one executive
func (h *ReportHandler) GetExecutiveCustomers(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, err := h.reportService.ExecutiveCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// GetExecutiveCustomerOutstanding ranks one executive's customers by outstanding
func (h *ReportHandler) GetExecutiveCustomerOutstanding(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ranked, err := h.reportService.ExecutiveCustomerOutstanding(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ranked)
}

// GetMonthlyExecutiveTrend returns month-by-executive aggregated totals
func (h *ReportHandler) GetMonthlyExecutiveTrend(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trend, err := h.reportService.MonthlyExecutiveTrend(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trend)
}

// GetCommissionSummary returns per-executive commission totals
func (h *ReportHandler) GetCommissionSummary(c *gin.Context) {
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
	h.Success(c, summary)
}

// GetCustomerOutstanding ranks customers by outstanding balance
func (h *ReportHandler) GetCustomerOutstanding(c *gin.Context) {
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
	h.Success(c, ranked)
}

// GetCustomerTransactions returns the ledger rows of one customer
func (h *ReportHandler) GetCustomerTransactions(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, err := h.reportService.CustomerTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// GetCustomerDailySummary returns day-by-customer aggregated totals
func (h *ReportHandler) GetCustomerDailySummary(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.CustomerDailySummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetTopCustomerTrend returns the monthly sales series of the top customers
func (h *ReportHandler) GetTopCustomerTrend(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trend, err := h.reportService.TopCustomerTrend(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trend)
}

// GetCategorySummary returns per-customer-type aggregated totals
func (h *ReportHandler) GetCategorySummary(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.CategorySummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetCategoryTransactions returns ledger rows for the selected customer types
func (h *ReportHandler) GetCategoryTransactions(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, err := h.reportService.CategoryTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}
