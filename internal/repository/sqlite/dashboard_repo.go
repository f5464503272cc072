package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"findash/internal/domain"
	"findash/internal/port"
)

type dashboardRepo struct {
	db *sqlx.DB
}

// NewDashboardRepo creates a SQLite-backed DashboardRepository.
func NewDashboardRepo(db *sqlx.DB) port.DashboardRepository {
	return &dashboardRepo{db: db}
}

const statsQuery = `SELECT
	COUNT(DISTINCT invoice_id) AS totalInvoices,
	SUM(invoice_total) AS totalSpend,
	AVG(invoice_total) AS avgInvoiceValue,
	(SELECT COUNT(DISTINCT id) FROM documents) AS documentsUploaded
FROM invoices
WHERE invoice_total IS NOT NULL`

const invoiceTrendsQuery = `SELECT
	strftime('%Y-%m', invoice_date) AS month,
	COALESCE(SUM(invoice_total), 0) AS value,
	COUNT(DISTINCT invoice_id) AS count
FROM invoices
WHERE invoice_date IS NOT NULL AND invoice_total IS NOT NULL
GROUP BY strftime('%Y-%m', invoice_date)
ORDER BY month DESC
LIMIT ?`

const topVendorsQuery = `SELECT
	v.name AS vendor,
	COALESCE(SUM(i.invoice_total), 0) AS spend
FROM vendors v
JOIN invoices i ON v.id = i.vendor_id
WHERE i.invoice_total IS NOT NULL
GROUP BY v.id, v.name
ORDER BY spend DESC
LIMIT ?`

const categorySpendQuery = `SELECT
	CASE
		WHEN v.name LIKE '%Tech%' OR v.name LIKE '%Software%' THEN 'Technology'
		WHEN v.name LIKE '%Office%' OR v.name LIKE '%Supply%' THEN 'Office Supplies'
		WHEN v.name LIKE '%Travel%' THEN 'Travel'
		ELSE 'Other'
	END AS category,
	COALESCE(SUM(i.invoice_total), 0) AS spend
FROM invoices i
JOIN vendors v ON i.vendor_id = v.id
WHERE i.invoice_total IS NOT NULL
GROUP BY category
ORDER BY spend DESC`

const cashOutflowQuery = `SELECT
	strftime('%Y-%m', COALESCE(pt.due_date, date(i.invoice_date, '+30 days'))) AS month,
	COALESCE(SUM(i.invoice_total), 0) AS amount
FROM invoices i
LEFT JOIN payment_terms pt ON i.id = pt.invoice_id
WHERE i.invoice_total IS NOT NULL
GROUP BY month
ORDER BY month
LIMIT ?`

const listInvoicesQuery = `SELECT DISTINCT
	i.id,
	i.invoice_id AS invoiceNumber,
	i.invoice_date AS invoiceDate,
	i.invoice_total AS amount,
	i.currency_symbol AS currency,
	v.name AS vendor,
	CASE WHEN pt.due_date < date('now') THEN 'overdue' ELSE 'pending' END AS status,
	'General' AS category
FROM invoices i
LEFT JOIN vendors v ON i.vendor_id = v.id
LEFT JOIN payment_terms pt ON i.id = pt.invoice_id`

func (r *dashboardRepo) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := r.db.GetContext(ctx, &stats, statsQuery); err != nil {
		return nil, fmt.Errorf("dashboardRepo.GetStats: %w", err)
	}
	return &stats, nil
}

func (r *dashboardRepo) InvoiceTrends(ctx context.Context, months int) ([]domain.InvoiceTrend, error) {
	trends := []domain.InvoiceTrend{}
	if err := r.db.SelectContext(ctx, &trends, invoiceTrendsQuery, months); err != nil {
		return nil, fmt.Errorf("dashboardRepo.InvoiceTrends: %w", err)
	}
	return trends, nil
}

func (r *dashboardRepo) TopVendors(ctx context.Context, limit int) ([]domain.VendorSpend, error) {
	vendors := []domain.VendorSpend{}
	if err := r.db.SelectContext(ctx, &vendors, topVendorsQuery, limit); err != nil {
		return nil, fmt.Errorf("dashboardRepo.TopVendors: %w", err)
	}
	return vendors, nil
}

func (r *dashboardRepo) CategorySpend(ctx context.Context) ([]domain.CategorySpend, error) {
	categories := []domain.CategorySpend{}
	if err := r.db.SelectContext(ctx, &categories, categorySpendQuery); err != nil {
		return nil, fmt.Errorf("dashboardRepo.CategorySpend: %w", err)
	}
	return categories, nil
}

func (r *dashboardRepo) CashOutflow(ctx context.Context, months int) ([]domain.CashOutflow, error) {
	outflow := []domain.CashOutflow{}
	if err := r.db.SelectContext(ctx, &outflow, cashOutflowQuery, months); err != nil {
		return nil, fmt.Errorf("dashboardRepo.CashOutflow: %w", err)
	}
	return outflow, nil
}

func (r *dashboardRepo) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRow, error) {
	var sb strings.Builder
	sb.WriteString(listInvoicesQuery)
	args := []interface{}{}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		sb.WriteString("\nWHERE v.name LIKE ? OR i.invoice_id LIKE ?")
		args = append(args, pattern, pattern)
	}
	sb.WriteString("\nORDER BY i.invoice_date DESC, i.id DESC\nLIMIT ?")
	args = append(args, filter.Limit)

	rows := []domain.InvoiceRow{}
	if err := r.db.SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("dashboardRepo.ListInvoices: %w", err)
	}
	return rows, nil
}
