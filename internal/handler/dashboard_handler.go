package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"findash/internal/domain"
	"findash/internal/service"
)

// DashboardHandler handles the dashboard read endpoints.
type DashboardHandler struct {
	svc service.DashboardService
	log *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

// Stats handles GET /api/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	h.respond(c, stats, err)
}

// InvoiceTrends handles GET /api/invoice-trends
func (h *DashboardHandler) InvoiceTrends(c *gin.Context) {
	trends, err := h.svc.InvoiceTrends(c.Request.Context())
	h.respond(c, trends, err)
}

// TopVendors handles GET /api/vendors/top10
func (h *DashboardHandler) TopVendors(c *gin.Context) {
	vendors, err := h.svc.TopVendors(c.Request.Context())
	h.respond(c, vendors, err)
}

// CategorySpend handles GET /api/category-spend
func (h *DashboardHandler) CategorySpend(c *gin.Context) {
	categories, err := h.svc.CategorySpend(c.Request.Context())
	h.respond(c, categories, err)
}

// CashOutflow handles GET /api/cash-outflow
func (h *DashboardHandler) CashOutflow(c *gin.Context) {
	outflow, err := h.svc.CashOutflow(c.Request.Context())
	h.respond(c, outflow, err)
}

// ListInvoices handles GET /api/invoices?search=&limit=
func (h *DashboardHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.svc.ListInvoices(c.Request.Context(), parseInvoiceFilter(c))
	h.respond(c, invoices, err)
}

// ExportInvoices handles GET /api/invoices/export?format=csv|xlsx&search=
func (h *DashboardHandler) ExportInvoices(c *gin.Context) {
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))

	file, err := h.svc.ExportInvoices(c.Request.Context(), parseInvoiceFilter(c), format)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *DashboardHandler) respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// parseInvoiceFilter reads search and limit. An unparseable limit is left at
// zero so the service applies its default.
func parseInvoiceFilter(c *gin.Context) domain.InvoiceFilter {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.InvoiceFilter{
		Search: c.Query("search"),
		Limit:  limit,
	}
}
