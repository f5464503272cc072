package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"findash/internal/domain"
	"findash/internal/port"
)

type maintenanceRepo struct {
	db *sqlx.DB
}

// NewMaintenanceRepo creates a SQLite-backed MaintenanceRepository.
func NewMaintenanceRepo(db *sqlx.DB) port.MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

// duplicateInvoicesClause selects every invoice row that shares its
// invoice_id with a row of lower id.
const duplicateInvoicesClause = `invoice_id IS NOT NULL AND id NOT IN (
	SELECT MIN(id) FROM invoices WHERE invoice_id IS NOT NULL GROUP BY invoice_id
)`

func (r *maintenanceRepo) DedupeInvoices(ctx context.Context) (invoices, lineItems int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("maintenanceRepo.DedupeInvoices begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM line_items WHERE invoice_id IN (SELECT id FROM invoices WHERE `+duplicateInvoicesClause+`)`)
	if err != nil {
		return 0, 0, fmt.Errorf("maintenanceRepo.DedupeInvoices line items: %w", err)
	}
	lineItems, _ = res.RowsAffected()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM payment_terms WHERE invoice_id IN (SELECT id FROM invoices WHERE `+duplicateInvoicesClause+`)`); err != nil {
		return 0, 0, fmt.Errorf("maintenanceRepo.DedupeInvoices payment terms: %w", err)
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM invoices WHERE `+duplicateInvoicesClause)
	if err != nil {
		return 0, 0, fmt.Errorf("maintenanceRepo.DedupeInvoices invoices: %w", err)
	}
	invoices, _ = res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("maintenanceRepo.DedupeInvoices commit: %w", err)
	}
	return invoices, lineItems, nil
}

const countRowsQuery = `SELECT
	(SELECT COUNT(*) FROM documents) AS documents,
	(SELECT COUNT(*) FROM invoices) AS invoices,
	(SELECT COUNT(*) FROM vendors) AS vendors,
	(SELECT COUNT(*) FROM customers) AS customers,
	(SELECT COUNT(*) FROM line_items) AS line_items`

func (r *maintenanceRepo) CountRows(ctx context.Context) (*domain.TableCounts, error) {
	var counts domain.TableCounts
	if err := r.db.GetContext(ctx, &counts, countRowsQuery); err != nil {
		return nil, fmt.Errorf("maintenanceRepo.CountRows: %w", err)
	}
	return &counts, nil
}

func (r *maintenanceRepo) SampleInvoices(ctx context.Context, limit int) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	if err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices ORDER BY id LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("maintenanceRepo.SampleInvoices: %w", err)
	}
	return invoices, nil
}

func (r *maintenanceRepo) SampleVendors(ctx context.Context, limit int) ([]domain.Vendor, error) {
	vendors := []domain.Vendor{}
	if err := r.db.SelectContext(ctx, &vendors,
		"SELECT * FROM vendors ORDER BY id LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("maintenanceRepo.SampleVendors: %w", err)
	}
	return vendors, nil
}
