package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/repository/sqlite"
	"findash/internal/repository/sqlite/sqlitetest"
)

func TestQueryExecutor_Execute(t *testing.T) {
	db := sqlitetest.NewDB(t)
	seedInvoice(t, db, "d1", "INV-1", "Acme", "2024-01-15", "100")
	exec := sqlite.NewQueryExecutor(db)

	rows, err := exec.Execute(context.Background(),
		"SELECT v.name AS vendor, i.invoice_id FROM invoices i JOIN vendors v ON v.id = i.vendor_id")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0]["vendor"])
	assert.Equal(t, "INV-1", rows[0]["invoice_id"])
}

func TestQueryExecutor_EmptyResultIsNotNil(t *testing.T) {
	exec := sqlite.NewQueryExecutor(sqlitetest.NewDB(t))

	rows, err := exec.Execute(context.Background(), "SELECT * FROM invoices")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestQueryExecutor_InvalidSQL(t *testing.T) {
	exec := sqlite.NewQueryExecutor(sqlitetest.NewDB(t))

	_, err := exec.Execute(context.Background(), "SELEC nonsense FROM nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queryExecutor.Execute")
}
