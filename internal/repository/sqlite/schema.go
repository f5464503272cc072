package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements create the dashboard schema. Every statement is
// create-if-absent so EnsureSchema can run on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id TEXT PRIMARY KEY,
		name TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS departments (
		id TEXT PRIMARY KEY,
		organization_id TEXT REFERENCES organizations(id),
		name TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		name TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS vendors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		address TEXT,
		tax_id TEXT,
		party_number TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		address TEXT,
		tax_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		file_path TEXT,
		file_size INTEGER,
		file_type TEXT,
		status TEXT,
		organization_id TEXT REFERENCES organizations(id),
		department_id TEXT REFERENCES departments(id),
		uploaded_by_id TEXT REFERENCES users(id),
		is_validated_by_human BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP,
		processed_at TIMESTAMP,
		analytics_id TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id TEXT REFERENCES documents(id),
		invoice_id TEXT,
		invoice_date DATE,
		delivery_date DATE,
		vendor_id INTEGER REFERENCES vendors(id),
		customer_id INTEGER REFERENCES customers(id),
		document_type TEXT,
		currency_symbol TEXT,
		sub_total DECIMAL(15,2),
		total_tax DECIMAL(15,2),
		invoice_total DECIMAL(15,2),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS payment_terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER REFERENCES invoices(id),
		due_date DATE,
		payment_terms TEXT,
		bank_account_number TEXT,
		bic TEXT,
		account_name TEXT,
		net_days INTEGER,
		discount_percentage DECIMAL(5,2),
		discount_days INTEGER,
		discount_due_date DATE,
		discounted_total DECIMAL(15,2),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS line_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER REFERENCES invoices(id),
		sr_no INTEGER,
		description TEXT,
		quantity DECIMAL(10,3),
		unit_price DECIMAL(15,2),
		total_price DECIMAL(15,2),
		sachkonto TEXT,
		bu_schluessel TEXT,
		vat_rate DECIMAL(5,2),
		vat_amount DECIMAL(15,2),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_document_id ON invoices(document_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_vendor_id ON invoices(vendor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_line_items_invoice_id ON line_items(invoice_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payment_terms_invoice_id ON payment_terms(invoice_id)`,
}

// Tables lists the tables EnsureSchema creates, in dependency order.
var Tables = []string{
	"organizations", "departments", "users", "vendors", "customers",
	"documents", "invoices", "payment_terms", "line_items",
}

// EnsureSchema creates any missing table or index. Existing tables and their
// rows are left untouched.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite.EnsureSchema begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite.EnsureSchema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite.EnsureSchema commit: %w", err)
	}
	return nil
}
