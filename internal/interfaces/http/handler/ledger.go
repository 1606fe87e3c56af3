package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/salesboard/backend/internal/application/report"
)

// LedgerHandler handles ledger source API endpoints
type LedgerHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(reportService *reportapp.ReportService) *LedgerHandler {
	return &LedgerHandler{
		reportService: reportService,
	}
}

// RegisterRoutes mounts the ledger endpoints under /ledger
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	ledger.GET("/info", h.GetInfo)
	ledger.POST("/refresh", h.Refresh)
}

// GetInfo returns snapshot metadata and cache counters
func (h *LedgerHandler) GetInfo(c *gin.Context) {
	info, err := h.reportService.LedgerInfo(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Refresh discards the cached snapshot and reloads the source file
func (h *LedgerHandler) Refresh(c *gin.Context) {
	info, err := h.reportService.RefreshLedger(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
