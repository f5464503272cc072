package port

import (
	"context"

	"findash/internal/domain"
)

// DashboardRepository provides the aggregate queries behind the dashboard.
type DashboardRepository interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
	InvoiceTrends(ctx context.Context, months int) ([]domain.InvoiceTrend, error)
	TopVendors(ctx context.Context, limit int) ([]domain.VendorSpend, error)
	CategorySpend(ctx context.Context) ([]domain.CategorySpend, error)
	CashOutflow(ctx context.Context, months int) ([]domain.CashOutflow, error)
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRow, error)
}
