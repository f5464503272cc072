package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/domain"
	"findash/internal/repository/sqlite"
	"findash/internal/repository/sqlite/sqlitetest"
)

func strPtr(s string) *string { return &s }

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func date(s string) domain.NullDate {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return domain.NewNullDate(t)
}

// seedInvoice writes one document with a vendor and invoice in its own
// transaction and returns the invoice id.
func seedInvoice(t *testing.T, db *sqlx.DB, docID, invoiceID, vendor, invoiceDate, total string) int64 {
	t.Helper()
	ctx := context.Background()

	tx, err := sqlite.NewIngestStore(db).Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.InsertDocument(ctx, &domain.Document{ID: docID, Name: docID + ".pdf"}))
	vendorID, err := tx.CreateVendor(ctx, &domain.Vendor{Name: vendor})
	require.NoError(t, err)

	inv := &domain.Invoice{DocumentID: docID, VendorID: &vendorID, CurrencySymbol: strPtr("EUR")}
	if invoiceID != "" {
		inv.InvoiceID = strPtr(invoiceID)
	}
	if invoiceDate != "" {
		inv.InvoiceDate = date(invoiceDate)
	}
	if total != "" {
		inv.InvoiceTotal = nullDec(total)
	}
	id, err := tx.CreateInvoice(ctx, inv)
	require.NoError(t, err)

	require.NoError(t, tx.Commit())
	return id
}

func TestIngestTx_DimensionsAreInsertIfAbsent(t *testing.T) {
	db := sqlitetest.NewDB(t)
	ctx := context.Background()

	tx, err := sqlite.NewIngestStore(db).Begin(ctx)
	require.NoError(t, err)

	org := &domain.Organization{ID: "org-1", Name: "Organization org-1"}
	require.NoError(t, tx.EnsureOrganization(ctx, org))
	require.NoError(t, tx.EnsureOrganization(ctx, &domain.Organization{ID: "org-1", Name: "renamed"}))
	require.NoError(t, tx.EnsureDepartment(ctx, &domain.Department{ID: "dep-1", OrganizationID: "org-1", Name: "Department dep-1"}))
	require.NoError(t, tx.EnsureUser(ctx, &domain.User{ID: "u-1", Name: "User u-1"}))
	require.NoError(t, tx.EnsureUser(ctx, &domain.User{ID: "u-1", Name: "User u-1"}))
	require.NoError(t, tx.Commit())

	var orgs []domain.Organization
	require.NoError(t, db.Select(&orgs, "SELECT * FROM organizations"))
	require.Len(t, orgs, 1)
	assert.Equal(t, "Organization org-1", orgs[0].Name)

	var users int
	require.NoError(t, db.Get(&users, "SELECT COUNT(*) FROM users"))
	assert.Equal(t, 1, users)
}

func TestIngestTx_InsertDocumentConflictIgnored(t *testing.T) {
	db := sqlitetest.NewDB(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	doc := &domain.Document{
		ID:                 "doc-1",
		Name:               "invoice.pdf",
		FileSize:           2048,
		FileType:           strPtr("application/pdf"),
		IsValidatedByHuman: true,
		CreatedAt:          &created,
	}

	tx, err := sqlite.NewIngestStore(db).Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertDocument(ctx, doc))
	require.NoError(t, tx.InsertDocument(ctx, &domain.Document{ID: "doc-1", Name: "other.pdf"}))
	require.NoError(t, tx.Commit())

	var docs []domain.Document
	require.NoError(t, db.Select(&docs, "SELECT * FROM documents"))
	require.Len(t, docs, 1)
	assert.Equal(t, "invoice.pdf", docs[0].Name)
	assert.Equal(t, int64(2048), docs[0].FileSize)
	assert.True(t, docs[0].IsValidatedByHuman)
	require.NotNil(t, docs[0].CreatedAt)
	assert.True(t, created.Equal(*docs[0].CreatedAt))
	assert.Nil(t, docs[0].UpdatedAt)
}

func TestIngestTx_InvoiceWithLineItems(t *testing.T) {
	db := sqlitetest.NewDB(t)
	ctx := context.Background()

	tx, err := sqlite.NewIngestStore(db).Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.InsertDocument(ctx, &domain.Document{ID: "doc-1", Name: "a.pdf"}))
	vendorID, err := tx.CreateVendor(ctx, &domain.Vendor{Name: "Acme", TaxID: strPtr("DE123")})
	require.NoError(t, err)
	customerID, err := tx.CreateCustomer(ctx, &domain.Customer{Name: "Buyer GmbH"})
	require.NoError(t, err)

	invoiceID, err := tx.CreateInvoice(ctx, &domain.Invoice{
		DocumentID:   "doc-1",
		InvoiceID:    strPtr("INV-1"),
		InvoiceDate:  date("2024-01-15"),
		VendorID:     &vendorID,
		CustomerID:   &customerID,
		SubTotal:     nullDec("100.00"),
		TotalTax:     nullDec("19.00"),
		InvoiceTotal: nullDec("119.00"),
	})
	require.NoError(t, err)

	srNo := int64(1)
	_, err = tx.CreateLineItem(ctx, &domain.LineItem{
		InvoiceID:   invoiceID,
		SrNo:        &srNo,
		Description: strPtr("Widget"),
		Quantity:    nullDec("2.5"),
		UnitPrice:   nullDec("40"),
		TotalPrice:  nullDec("100"),
		Sachkonto:   strPtr("4400"),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	var inv domain.Invoice
	require.NoError(t, db.Get(&inv, "SELECT * FROM invoices WHERE id = ?", invoiceID))
	assert.Equal(t, "2024-01-15", inv.InvoiceDate.String())
	assert.False(t, inv.DeliveryDate.Valid)
	assert.True(t, inv.InvoiceTotal.Valid)
	assert.True(t, decimal.RequireFromString("119").Equal(inv.InvoiceTotal.Decimal))
	require.NotNil(t, inv.CustomerID)
	assert.Equal(t, customerID, *inv.CustomerID)

	var item domain.LineItem
	require.NoError(t, db.Get(&item, "SELECT * FROM line_items WHERE invoice_id = ?", invoiceID))
	assert.True(t, decimal.RequireFromString("2.5").Equal(item.Quantity.Decimal))
	assert.False(t, item.VATRate.Valid)
	assert.Equal(t, "4400", *item.Sachkonto)
}

func TestIngestTx_RollbackDiscardsWork(t *testing.T) {
	db := sqlitetest.NewDB(t)
	ctx := context.Background()

	tx, err := sqlite.NewIngestStore(db).Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertDocument(ctx, &domain.Document{ID: "doc-1", Name: "a.pdf"}))
	require.NoError(t, tx.Rollback())

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM documents"))
	assert.Zero(t, count)
}
