package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/repository/sqlite"
	"findash/internal/repository/sqlite/sqlitetest"
)

func TestMaintenanceRepo_DedupeInvoices(t *testing.T) {
	db := sqlitetest.NewDB(t)
	repo := sqlite.NewMaintenanceRepo(db)
	ctx := context.Background()

	keep := seedInvoice(t, db, "d1", "INV-1", "Acme", "2024-01-01", "10")
	dup := seedInvoice(t, db, "d2", "INV-1", "Acme", "2024-01-01", "10")
	seedInvoice(t, db, "d3", "INV-2", "Acme", "2024-01-02", "20")
	seedInvoice(t, db, "d4", "", "Acme", "", "")
	seedInvoice(t, db, "d5", "", "Acme", "", "")

	_, err := db.Exec("INSERT INTO line_items (invoice_id, description) VALUES (?, 'a'), (?, 'b'), (?, 'c')", keep, dup, dup)
	require.NoError(t, err)

	invoices, lineItems, err := repo.DedupeInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), invoices)
	assert.Equal(t, int64(2), lineItems)

	var ids []int64
	require.NoError(t, db.Select(&ids, "SELECT id FROM invoices WHERE invoice_id = 'INV-1'"))
	assert.Equal(t, []int64{keep}, ids)

	counts, err := repo.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Invoices)
	assert.Equal(t, int64(1), counts.LineItems)
	assert.Equal(t, int64(5), counts.Documents)
	assert.Equal(t, int64(5), counts.Vendors)
}

func TestMaintenanceRepo_Samples(t *testing.T) {
	db := sqlitetest.NewDB(t)
	repo := sqlite.NewMaintenanceRepo(db)
	ctx := context.Background()

	for _, id := range []string{"d1", "d2", "d3", "d4"} {
		seedInvoice(t, db, id, "INV-"+id, "Vendor "+id, "2024-01-01", "1")
	}

	invoices, err := repo.SampleInvoices(ctx, 3)
	require.NoError(t, err)
	require.Len(t, invoices, 3)
	assert.Equal(t, "d1", invoices[0].DocumentID)

	vendors, err := repo.SampleVendors(ctx, 3)
	require.NoError(t, err)
	require.Len(t, vendors, 3)
	assert.Equal(t, "Vendor d1", vendors[0].Name)
	assert.False(t, vendors[0].CreatedAt.IsZero())
}
