package port

import (
	"context"

	"findash/internal/domain"
)

// IngestStore opens the write transaction used by one normalizer run.
type IngestStore interface {
	Begin(ctx context.Context) (IngestTx, error)
}

// IngestTx writes normalized rows inside a single transaction. Dimension and
// document inserts are insert-if-absent; the remaining inserts always create a
// new row and return its surrogate key.
type IngestTx interface {
	EnsureOrganization(ctx context.Context, org *domain.Organization) error
	EnsureDepartment(ctx context.Context, dept *domain.Department) error
	EnsureUser(ctx context.Context, user *domain.User) error
	InsertDocument(ctx context.Context, doc *domain.Document) error
	CreateVendor(ctx context.Context, vendor *domain.Vendor) (int64, error)
	CreateCustomer(ctx context.Context, customer *domain.Customer) (int64, error)
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) (int64, error)
	CreateLineItem(ctx context.Context, item *domain.LineItem) (int64, error)
	Commit() error
	Rollback() error
}

// MaintenanceRepository backs the dedupe and inspect tools.
type MaintenanceRepository interface {
	DedupeInvoices(ctx context.Context) (invoices, lineItems int64, err error)
	CountRows(ctx context.Context) (*domain.TableCounts, error)
	SampleInvoices(ctx context.Context, limit int) ([]domain.Invoice, error)
	SampleVendors(ctx context.Context, limit int) ([]domain.Vendor, error)
}
