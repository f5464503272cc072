package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/generator/rules"
)

func TestRulesGenerator(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What is our Total Spend?", rules.TotalSpendSQL},
		{"total amount invoiced", rules.TotalSpendSQL},
		{"Show the top 5 vendors", rules.TopVendorsSQL},
		{"which invoices are overdue", rules.OverdueSQL},
		{"count the invoices", rules.InvoiceCountSQL},
		{"number of invoices", rules.InvoiceCountSQL},
		{"total spend by top vendor", rules.TotalSpendSQL},
		{"show me something", rules.RecentInvoicesSQL},
		{"", rules.RecentInvoicesSQL},
	}

	g := rules.NewGenerator()
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			sql, err := g.GenerateSQL(context.Background(), tt.question)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}
