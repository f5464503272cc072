package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"findash/internal/handler"
	"findash/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *zap.Logger,
	allowedOrigins []string,
	queryH *handler.QueryHandler,
	dashboardH *handler.DashboardHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/health", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.POST("/generate-sql", queryH.GenerateSQL)

	api := r.Group("/api")
	api.GET("/stats", dashboardH.Stats)
	api.GET("/invoice-trends", dashboardH.InvoiceTrends)
	api.GET("/vendors/top10", dashboardH.TopVendors)
	api.GET("/category-spend", dashboardH.CategorySpend)
	api.GET("/cash-outflow", dashboardH.CashOutflow)
	api.GET("/invoices", dashboardH.ListInvoices)
	api.GET("/invoices/export", dashboardH.ExportInvoices)
	api.POST("/chat-with-data", queryH.ChatWithData)

	return r
}
