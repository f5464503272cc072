package ingest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"findash/internal/domain"
	"findash/internal/ingest"
	"findash/internal/repository/sqlite"
	"findash/internal/repository/sqlite/sqlitetest"
	"findash/mocks"
)

const fixture = `[
  {
    "_id": "doc-1",
    "name": "invoice-1.pdf",
    "filePath": "uploads/invoice-1.pdf",
    "fileSize": {"$numberLong": "20480"},
    "fileType": "application/pdf",
    "status": "processed",
    "organizationId": "org-1",
    "departmentId": "dep-1",
    "uploadedById": "user-1",
    "isValidatedByHuman": true,
    "createdAt": {"$date": "2024-03-01T10:30:00.000Z"},
    "analyticsId": "an-1",
    "extractedData": {
      "llmData": {
        "vendor": {"value": {
          "vendorName": {"value": "TechCorp GmbH"},
          "vendorAddress": {"value": "Hauptstr. 1"},
          "vendorTaxId": {"value": "DE123456789"}
        }},
        "customer": {"value": {
          "customerName": {"value": "Buyer AG"},
          "customerTaxId": {"value": "DE987654321"}
        }},
        "invoice": {"value": {
          "invoiceId": {"value": "INV-1001"},
          "invoiceDate": {"value": "2024-02-15"},
          "deliveryDate": {"value": "2024-02-10"}
        }},
        "summary": {"value": {
          "documentType": {"value": "invoice"},
          "currencySymbol": {"value": "EUR"},
          "subTotal": {"value": 100.00},
          "totalTax": {"value": "19.00"},
          "invoiceTotal": {"value": 119.00}
        }},
        "lineItems": {"value": {"items": {"value": [
          {"srNo": 1, "description": "Licence", "quantity": 2, "unitPrice": "50.00", "totalPrice": 100, "Sachkonto": 4400, "BUSchluessel": "9", "vatRate": 19, "vatAmount": 19},
          {"srNo": {"value": 1}, "description": {"value": "Licence"}, "quantity": {"value": 2}, "unitPrice": {"value": "50.00"}, "totalPrice": {"value": 100}, "Sachkonto": {"value": 4400}, "BUSchluessel": {"value": "9"}, "vatRate": {"value": 19}, "vatAmount": {"value": 19}},
          "not-an-item"
        ]}}}
      }
    }
  },
  {
    "_id": "doc-2",
    "name": "scan.png",
    "organizationId": "org-1",
    "uploadedById": "user-1"
  },
  {
    "_id": "doc-3",
    "fileType": "application/pdf"
  },
  "junk",
  {
    "_id": "doc-5",
    "name": "invoice-5.pdf",
    "organizationId": "org-1",
    "departmentId": "dep-1",
    "extractedData": {
      "llmData": {
        "vendor": {"value": {"vendorName": {"value": "   "}}},
        "customer": {"value": {"customerName": {"value": ""}}},
        "invoice": {"value": {"invoiceId": {"value": "INV-1005"}, "invoiceDate": {"value": "2024-02-30"}}},
        "summary": {"value": {"invoiceTotal": {"value": "n/a"}}}
      }
    }
  }
]`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newNormalizer(db *sqlx.DB) *ingest.Normalizer {
	return ingest.NewNormalizer(ingest.NewReader(nil), sqlite.NewIngestStore(db), zap.NewNop())
}

func count(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestNormalizer_Run(t *testing.T) {
	db := sqlitetest.NewDB(t)
	path := writeFixture(t, fixture)

	report, err := newNormalizer(db).Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 3, report.Processed)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, 2, report.Skipped[0].Index)
	assert.Equal(t, "doc-3", report.Skipped[0].DocumentID)
	assert.Equal(t, domain.ErrDocumentMissingName.Error(), report.Skipped[0].Reason)
	assert.Equal(t, 3, report.Skipped[1].Index)
	assert.Equal(t, domain.ErrInvalidRecord.Error(), report.Skipped[1].Reason)

	assert.Equal(t, 1, count(t, db, "organizations"))
	assert.Equal(t, 1, count(t, db, "departments"))
	assert.Equal(t, 1, count(t, db, "users"))
	assert.Equal(t, 3, count(t, db, "documents"))
	assert.Equal(t, 3, count(t, db, "invoices"))
	assert.Equal(t, 2, count(t, db, "vendors"))
	assert.Equal(t, 1, count(t, db, "customers"))
	assert.Equal(t, 2, count(t, db, "line_items"))

	var org domain.Organization
	require.NoError(t, db.Get(&org, "SELECT * FROM organizations"))
	assert.Equal(t, "Organization org-1", org.Name)
}

func TestNormalizer_DocumentFields(t *testing.T) {
	db := sqlitetest.NewDB(t)
	_, err := newNormalizer(db).Run(context.Background(), writeFixture(t, fixture))
	require.NoError(t, err)

	var doc domain.Document
	require.NoError(t, db.Get(&doc, "SELECT * FROM documents WHERE id = 'doc-1'"))
	assert.Equal(t, int64(20480), doc.FileSize)
	assert.True(t, doc.IsValidatedByHuman)
	require.NotNil(t, doc.CreatedAt)
	assert.Equal(t, "2024-03-01T10:30:00Z", doc.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
	assert.Nil(t, doc.ProcessedAt)

	var inv domain.Invoice
	require.NoError(t, db.Get(&inv, "SELECT * FROM invoices WHERE document_id = 'doc-1'"))
	assert.Equal(t, "INV-1001", *inv.InvoiceID)
	assert.Equal(t, "2024-02-15", inv.InvoiceDate.String())
	assert.Equal(t, "2024-02-10", inv.DeliveryDate.String())
	assert.True(t, decimal.NewFromInt(119).Equal(inv.InvoiceTotal.Decimal))
	assert.True(t, decimal.NewFromInt(19).Equal(inv.TotalTax.Decimal))
	require.NotNil(t, inv.VendorID)
	require.NotNil(t, inv.CustomerID)

	var customer domain.Customer
	require.NoError(t, db.Get(&customer, "SELECT * FROM customers WHERE id = ?", *inv.CustomerID))
	assert.Equal(t, "DE987654321", *customer.TaxID)
}

func TestNormalizer_EnvelopedAndBareLineItemsMatch(t *testing.T) {
	db := sqlitetest.NewDB(t)
	_, err := newNormalizer(db).Run(context.Background(), writeFixture(t, fixture))
	require.NoError(t, err)

	var items []domain.LineItem
	require.NoError(t, db.Select(&items, "SELECT * FROM line_items ORDER BY id"))
	require.Len(t, items, 2)

	a, b := items[0], items[1]
	assert.Equal(t, *a.SrNo, *b.SrNo)
	assert.Equal(t, *a.Description, *b.Description)
	assert.Equal(t, "4400", *a.Sachkonto)
	assert.Equal(t, *a.Sachkonto, *b.Sachkonto)
	assert.Equal(t, *a.BUSchluessel, *b.BUSchluessel)
	for _, pair := range [][2]decimal.NullDecimal{
		{a.Quantity, b.Quantity},
		{a.UnitPrice, b.UnitPrice},
		{a.TotalPrice, b.TotalPrice},
		{a.VATRate, b.VATRate},
		{a.VATAmount, b.VATAmount},
	} {
		require.True(t, pair[0].Valid)
		assert.True(t, pair[0].Decimal.Equal(pair[1].Decimal))
	}
}

func TestNormalizer_MissingExtractionAndBadValues(t *testing.T) {
	db := sqlitetest.NewDB(t)
	_, err := newNormalizer(db).Run(context.Background(), writeFixture(t, fixture))
	require.NoError(t, err)

	var bare domain.Invoice
	require.NoError(t, db.Get(&bare, "SELECT * FROM invoices WHERE document_id = 'doc-2'"))
	assert.Nil(t, bare.InvoiceID)
	assert.Nil(t, bare.VendorID)
	assert.Nil(t, bare.CustomerID)
	assert.False(t, bare.InvoiceDate.Valid)
	assert.False(t, bare.InvoiceTotal.Valid)

	var bad domain.Invoice
	require.NoError(t, db.Get(&bad, "SELECT * FROM invoices WHERE document_id = 'doc-5'"))
	assert.Equal(t, "INV-1005", *bad.InvoiceID)
	assert.False(t, bad.InvoiceDate.Valid)
	assert.False(t, bad.InvoiceTotal.Valid)
	assert.Nil(t, bad.CustomerID)
	require.NotNil(t, bad.VendorID)

	var vendorName string
	require.NoError(t, db.Get(&vendorName, "SELECT name FROM vendors WHERE id = ?", *bad.VendorID))
	assert.Equal(t, domain.UnknownVendorName, vendorName)
}

func TestNormalizer_RerunDuplicatesFacts(t *testing.T) {
	db := sqlitetest.NewDB(t)
	n := newNormalizer(db)
	path := writeFixture(t, fixture)

	_, err := n.Run(context.Background(), path)
	require.NoError(t, err)
	_, err = n.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, count(t, db, "documents"))
	assert.Equal(t, 1, count(t, db, "organizations"))
	assert.Equal(t, 1, count(t, db, "departments"))
	assert.Equal(t, 1, count(t, db, "users"))
	assert.Equal(t, 6, count(t, db, "invoices"))
	assert.Equal(t, 4, count(t, db, "vendors"))
	assert.Equal(t, 2, count(t, db, "customers"))
	assert.Equal(t, 4, count(t, db, "line_items"))
}

func TestNormalizer_ReadErrorsCommitNothing(t *testing.T) {
	store := new(mocks.MockIngestStore)
	n := ingest.NewNormalizer(ingest.NewReader(nil), store, zap.NewNop())

	_, err := n.Run(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = n.Run(context.Background(), writeFixture(t, `{"not": "an array"}`))
	assert.Error(t, err)

	store.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestNormalizer_BeginError(t *testing.T) {
	store := new(mocks.MockIngestStore)
	store.On("Begin", mock.Anything).Return(nil, errors.New("database is locked"))

	n := ingest.NewNormalizer(ingest.NewReader(nil), store, zap.NewNop())
	_, err := n.Run(context.Background(), writeFixture(t, `[]`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}

func TestNormalizer_CommitErrorRollsBack(t *testing.T) {
	tx := new(mocks.MockIngestTx)
	tx.On("InsertDocument", mock.Anything, mock.Anything).Return(nil)
	tx.On("CreateInvoice", mock.Anything, mock.Anything).Return(int64(1), nil)
	tx.On("Commit").Return(errors.New("disk I/O error"))
	tx.On("Rollback").Return(nil)

	store := new(mocks.MockIngestStore)
	store.On("Begin", mock.Anything).Return(tx, nil)

	n := ingest.NewNormalizer(ingest.NewReader(nil), store, zap.NewNop())
	_, err := n.Run(context.Background(), writeFixture(t, `[{"_id": "d1", "name": "a.pdf"}]`))

	require.Error(t, err)
	tx.AssertCalled(t, "Rollback")
	tx.AssertNotCalled(t, "CreateVendor", mock.Anything, mock.Anything)
}

func TestNormalizer_SQLErrorSkipsDocument(t *testing.T) {
	tx := new(mocks.MockIngestTx)
	tx.On("InsertDocument", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool { return d.ID == "bad" })).
		Return(errors.New("constraint failed"))
	tx.On("InsertDocument", mock.Anything, mock.Anything).Return(nil)
	tx.On("CreateInvoice", mock.Anything, mock.Anything).Return(int64(7), nil)
	tx.On("Commit").Return(nil)

	store := new(mocks.MockIngestStore)
	store.On("Begin", mock.Anything).Return(tx, nil)

	n := ingest.NewNormalizer(ingest.NewReader(nil), store, zap.NewNop())
	report, err := n.Run(context.Background(),
		writeFixture(t, `[{"_id": "bad", "name": "a.pdf"}, {"_id": "good", "name": "b.pdf"}]`))

	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "bad", report.Skipped[0].DocumentID)
	tx.AssertNotCalled(t, "Rollback")
	tx.AssertNumberOfCalls(t, "CreateInvoice", 1)
}

func TestNormalizer_S3Source(t *testing.T) {
	db := sqlitetest.NewDB(t)
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "exports", "2024/data.json").
		Return([]byte(`[{"_id": "d1", "name": "a.pdf"}]`), nil)

	n := ingest.NewNormalizer(ingest.NewReader(storage), sqlite.NewIngestStore(db), zap.NewNop())
	report, err := n.Run(context.Background(), "s3://exports/2024/data.json")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, count(t, db, "invoices"))
	storage.AssertExpectations(t)
}

func TestReader_S3WithoutStorage(t *testing.T) {
	_, err := ingest.NewReader(nil).Records(context.Background(), "s3://exports/data.json")
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ingest.ParseS3URI("s3://exports/a/b.json")
	require.NoError(t, err)
	assert.Equal(t, "exports", bucket)
	assert.Equal(t, "a/b.json", key)

	_, _, err = ingest.ParseS3URI("s3://exports")
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
}
