package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"findash/internal/domain"
	"findash/internal/port"
)

type ingestStore struct {
	db *sqlx.DB
}

// NewIngestStore creates a SQLite-backed IngestStore.
func NewIngestStore(db *sqlx.DB) port.IngestStore {
	return &ingestStore{db: db}
}

func (s *ingestStore) Begin(ctx context.Context) (port.IngestTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ingestStore.Begin: %w", err)
	}
	return &ingestTx{tx: tx}, nil
}

type ingestTx struct {
	tx *sqlx.Tx
}

func (t *ingestTx) EnsureOrganization(ctx context.Context, org *domain.Organization) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO organizations (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		org.ID, org.Name)
	if err != nil {
		return fmt.Errorf("ingestTx.EnsureOrganization: %w", err)
	}
	return nil
}

func (t *ingestTx) EnsureDepartment(ctx context.Context, dept *domain.Department) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO departments (id, organization_id, name) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		dept.ID, dept.OrganizationID, dept.Name)
	if err != nil {
		return fmt.Errorf("ingestTx.EnsureDepartment: %w", err)
	}
	return nil
}

func (t *ingestTx) EnsureUser(ctx context.Context, user *domain.User) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO users (id, email, name) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		user.ID, user.Email, user.Name)
	if err != nil {
		return fmt.Errorf("ingestTx.EnsureUser: %w", err)
	}
	return nil
}

func (t *ingestTx) InsertDocument(ctx context.Context, doc *domain.Document) error {
	query := `INSERT INTO documents (
		id, name, file_path, file_size, file_type, status,
		organization_id, department_id, uploaded_by_id,
		is_validated_by_human, created_at, updated_at,
		processed_at, analytics_id
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO NOTHING`

	_, err := t.tx.ExecContext(ctx, query,
		doc.ID, doc.Name, doc.FilePath, doc.FileSize, doc.FileType, doc.Status,
		doc.OrganizationID, doc.DepartmentID, doc.UploadedByID,
		doc.IsValidatedByHuman, doc.CreatedAt, doc.UpdatedAt,
		doc.ProcessedAt, doc.AnalyticsID)
	if err != nil {
		return fmt.Errorf("ingestTx.InsertDocument: %w", err)
	}
	return nil
}

func (t *ingestTx) CreateVendor(ctx context.Context, vendor *domain.Vendor) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO vendors (name, address, tax_id, party_number) VALUES (?, ?, ?, ?)`,
		vendor.Name, vendor.Address, vendor.TaxID, vendor.PartyNumber)
	if err != nil {
		return 0, fmt.Errorf("ingestTx.CreateVendor: %w", err)
	}
	return lastInsertID(res, "ingestTx.CreateVendor")
}

func (t *ingestTx) CreateCustomer(ctx context.Context, customer *domain.Customer) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO customers (name, address, tax_id) VALUES (?, ?, ?)`,
		customer.Name, customer.Address, customer.TaxID)
	if err != nil {
		return 0, fmt.Errorf("ingestTx.CreateCustomer: %w", err)
	}
	return lastInsertID(res, "ingestTx.CreateCustomer")
}

func (t *ingestTx) CreateInvoice(ctx context.Context, inv *domain.Invoice) (int64, error) {
	query := `INSERT INTO invoices (
		document_id, invoice_id, invoice_date, delivery_date,
		vendor_id, customer_id, document_type, currency_symbol,
		sub_total, total_tax, invoice_total
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := t.tx.ExecContext(ctx, query,
		inv.DocumentID, inv.InvoiceID, inv.InvoiceDate, inv.DeliveryDate,
		inv.VendorID, inv.CustomerID, inv.DocumentType, inv.CurrencySymbol,
		inv.SubTotal, inv.TotalTax, inv.InvoiceTotal)
	if err != nil {
		return 0, fmt.Errorf("ingestTx.CreateInvoice: %w", err)
	}
	return lastInsertID(res, "ingestTx.CreateInvoice")
}

func (t *ingestTx) CreateLineItem(ctx context.Context, item *domain.LineItem) (int64, error) {
	query := `INSERT INTO line_items (
		invoice_id, sr_no, description, quantity, unit_price,
		total_price, sachkonto, bu_schluessel, vat_rate, vat_amount
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := t.tx.ExecContext(ctx, query,
		item.InvoiceID, item.SrNo, item.Description, item.Quantity, item.UnitPrice,
		item.TotalPrice, item.Sachkonto, item.BUSchluessel, item.VATRate, item.VATAmount)
	if err != nil {
		return 0, fmt.Errorf("ingestTx.CreateLineItem: %w", err)
	}
	return lastInsertID(res, "ingestTx.CreateLineItem")
}

func (t *ingestTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("ingestTx.Commit: %w", err)
	}
	return nil
}

func (t *ingestTx) Rollback() error {
	return t.tx.Rollback()
}

type resultWithID interface {
	LastInsertId() (int64, error)
}

func lastInsertID(res resultWithID, op string) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s last insert id: %w", op, err)
	}
	return id, nil
}
