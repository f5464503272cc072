// Package rules answers a small set of common questions with fixed SQL,
// without calling an external model.
package rules

import (
	"context"
	"strings"

	"findash/internal/config"
	"findash/internal/generator"
	"findash/internal/port"
)

const (
	TotalSpendSQL = `SELECT SUM(invoice_total) as total_spend FROM invoices WHERE invoice_total IS NOT NULL`

	TopVendorsSQL = `SELECT v.name as vendor, SUM(i.invoice_total) as total_spend FROM vendors v ` +
		`JOIN invoices i ON v.id = i.vendor_id GROUP BY v.name ORDER BY total_spend DESC LIMIT 5`

	OverdueSQL = `SELECT DISTINCT v.name as vendor, i.invoice_id, i.invoice_total FROM invoices i ` +
		`JOIN vendors v ON i.vendor_id = v.id JOIN payment_terms pt ON i.id = pt.invoice_id ` +
		`WHERE pt.due_date < date('now')`

	InvoiceCountSQL = `SELECT COUNT(DISTINCT id) as total_invoices FROM invoices`

	RecentInvoicesSQL = `SELECT DISTINCT v.name as vendor, i.invoice_total as amount, i.invoice_date FROM invoices i ` +
		`JOIN vendors v ON i.vendor_id = v.id ORDER BY i.invoice_date DESC LIMIT 10`
)

func init() {
	generator.RegisterProvider("rules", func(_ *config.ProviderConfig) (port.SQLGenerator, error) {
		return NewGenerator(), nil
	})
}

type rule struct {
	match func(q string) bool
	sql   string
}

func containsAny(words ...string) func(string) bool {
	return func(q string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}
}

func containsAll(words ...string) func(string) bool {
	return func(q string) bool {
		for _, w := range words {
			if !strings.Contains(q, w) {
				return false
			}
		}
		return true
	}
}

// Rules are checked in order; the first match wins.
var rules = []rule{
	{containsAny("total spend", "total amount"), TotalSpendSQL},
	{containsAll("top", "vendor"), TopVendorsSQL},
	{containsAny("overdue"), OverdueSQL},
	{containsAny("count", "number"), InvoiceCountSQL},
}

// Generator implements port.SQLGenerator with keyword rules. It never fails.
type Generator struct{}

// NewGenerator creates a rules generator.
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateSQL(_ context.Context, question string) (string, error) {
	q := strings.ToLower(question)
	for _, r := range rules {
		if r.match(q) {
			return r.sql, nil
		}
	}
	return RecentInvoicesSQL, nil
}
