package generator

import (
	"regexp"
	"strings"
)

// schemaDescription is the table layout given to language-model providers.
const schemaDescription = `organizations(id TEXT PRIMARY KEY, name TEXT, created_at TIMESTAMP)
departments(id TEXT PRIMARY KEY, organization_id TEXT REFERENCES organizations(id), name TEXT, created_at TIMESTAMP)
users(id TEXT PRIMARY KEY, email TEXT, name TEXT, created_at TIMESTAMP)
vendors(id INTEGER PRIMARY KEY, name TEXT NOT NULL, address TEXT, tax_id TEXT, party_number TEXT, created_at TIMESTAMP)
customers(id INTEGER PRIMARY KEY, name TEXT NOT NULL, address TEXT, tax_id TEXT, created_at TIMESTAMP)
documents(id TEXT PRIMARY KEY, name TEXT NOT NULL, file_path TEXT, file_size INTEGER, file_type TEXT, status TEXT, organization_id TEXT, department_id TEXT, uploaded_by_id TEXT, is_validated_by_human BOOLEAN, created_at TIMESTAMP, updated_at TIMESTAMP, processed_at TIMESTAMP, analytics_id TEXT)
invoices(id INTEGER PRIMARY KEY, document_id TEXT REFERENCES documents(id), invoice_id TEXT, invoice_date DATE, delivery_date DATE, vendor_id INTEGER REFERENCES vendors(id), customer_id INTEGER REFERENCES customers(id), document_type TEXT, currency_symbol TEXT, sub_total DECIMAL(15,2), total_tax DECIMAL(15,2), invoice_total DECIMAL(15,2), created_at TIMESTAMP)
payment_terms(id INTEGER PRIMARY KEY, invoice_id INTEGER REFERENCES invoices(id), due_date DATE, payment_terms TEXT, bank_account_number TEXT, bic TEXT, account_name TEXT, net_days INTEGER, discount_percentage DECIMAL(5,2), discount_days INTEGER, discount_due_date DATE, discounted_total DECIMAL(15,2), created_at TIMESTAMP)
line_items(id INTEGER PRIMARY KEY, invoice_id INTEGER REFERENCES invoices(id), sr_no INTEGER, description TEXT, quantity DECIMAL(10,3), unit_price DECIMAL(15,2), total_price DECIMAL(15,2), sachkonto TEXT, bu_schluessel TEXT, vat_rate DECIMAL(5,2), vat_amount DECIMAL(15,2), created_at TIMESTAMP)`

// BuildSQLPrompt returns the instruction sent to language-model providers.
func BuildSQLPrompt(question string) string {
	return `You translate questions about invoice data into SQLite SQL.

The database has these tables:
` + schemaDescription + `

Rules:
- Answer with exactly one SQLite statement and nothing else.
- Dates are stored as YYYY-MM-DD text. Use strftime and date() for date arithmetic.
- Join vendors through invoices.vendor_id and line items through line_items.invoice_id.

Question: ` + question
}

var fencedSQL = regexp.MustCompile("(?is)```(?:sqlite|sql)?\\s*(.*?)```")

// ExtractSQL pulls the statement out of a model answer, removing Markdown
// code fences and surrounding whitespace.
func ExtractSQL(text string) string {
	if m := fencedSQL.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	return strings.TrimSpace(text)
}
