package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Organization is a dimension row created on first reference by a document.
type Organization struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Department belongs to an organization. Created on first reference.
type Department struct {
	ID             string    `db:"id" json:"id"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// User is the uploader of a document. Created on first reference.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     *string   `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Document is the top-level ingested record. Its ID is assigned by the
// upstream extraction system.
type Document struct {
	ID                 string     `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	FilePath           *string    `db:"file_path" json:"file_path"`
	FileSize           int64      `db:"file_size" json:"file_size"`
	FileType           *string    `db:"file_type" json:"file_type"`
	Status             *string    `db:"status" json:"status"`
	OrganizationID     *string    `db:"organization_id" json:"organization_id"`
	DepartmentID       *string    `db:"department_id" json:"department_id"`
	UploadedByID       *string    `db:"uploaded_by_id" json:"uploaded_by_id"`
	IsValidatedByHuman bool       `db:"is_validated_by_human" json:"is_validated_by_human"`
	CreatedAt          *time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          *time.Time `db:"updated_at" json:"updated_at"`
	ProcessedAt        *time.Time `db:"processed_at" json:"processed_at"`
	AnalyticsID        *string    `db:"analytics_id" json:"analytics_id"`
}

// Vendor is extracted per document; the same vendor seen twice yields two rows.
type Vendor struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Address     *string   `db:"address" json:"address"`
	TaxID       *string   `db:"tax_id" json:"tax_id"`
	PartyNumber *string   `db:"party_number" json:"party_number"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Customer is extracted per document, only when a customer name is present.
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   *string   `db:"address" json:"address"`
	TaxID     *string   `db:"tax_id" json:"tax_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Invoice is created exactly once per ingested document.
type Invoice struct {
	ID             int64               `db:"id" json:"id"`
	DocumentID     string              `db:"document_id" json:"document_id"`
	InvoiceID      *string             `db:"invoice_id" json:"invoice_id"`
	InvoiceDate    NullDate            `db:"invoice_date" json:"invoice_date"`
	DeliveryDate   NullDate            `db:"delivery_date" json:"delivery_date"`
	VendorID       *int64              `db:"vendor_id" json:"vendor_id"`
	CustomerID     *int64              `db:"customer_id" json:"customer_id"`
	DocumentType   *string             `db:"document_type" json:"document_type"`
	CurrencySymbol *string             `db:"currency_symbol" json:"currency_symbol"`
	SubTotal       decimal.NullDecimal `db:"sub_total" json:"sub_total"`
	TotalTax       decimal.NullDecimal `db:"total_tax" json:"total_tax"`
	InvoiceTotal   decimal.NullDecimal `db:"invoice_total" json:"invoice_total"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
}

// PaymentTerms is part of the schema but is not written by ingestion.
type PaymentTerms struct {
	ID                 int64               `db:"id" json:"id"`
	InvoiceID          int64               `db:"invoice_id" json:"invoice_id"`
	DueDate            NullDate            `db:"due_date" json:"due_date"`
	PaymentTerms       *string             `db:"payment_terms" json:"payment_terms"`
	BankAccountNumber  *string             `db:"bank_account_number" json:"bank_account_number"`
	BIC                *string             `db:"bic" json:"bic"`
	AccountName        *string             `db:"account_name" json:"account_name"`
	NetDays            *int64              `db:"net_days" json:"net_days"`
	DiscountPercentage decimal.NullDecimal `db:"discount_percentage" json:"discount_percentage"`
	DiscountDays       *int64              `db:"discount_days" json:"discount_days"`
	DiscountDueDate    NullDate            `db:"discount_due_date" json:"discount_due_date"`
	DiscountedTotal    decimal.NullDecimal `db:"discounted_total" json:"discounted_total"`
	CreatedAt          time.Time           `db:"created_at" json:"created_at"`
}

// LineItem belongs to an invoice.
type LineItem struct {
	ID           int64               `db:"id" json:"id"`
	InvoiceID    int64               `db:"invoice_id" json:"invoice_id"`
	SrNo         *int64              `db:"sr_no" json:"sr_no"`
	Description  *string             `db:"description" json:"description"`
	Quantity     decimal.NullDecimal `db:"quantity" json:"quantity"`
	UnitPrice    decimal.NullDecimal `db:"unit_price" json:"unit_price"`
	TotalPrice   decimal.NullDecimal `db:"total_price" json:"total_price"`
	Sachkonto    *string             `db:"sachkonto" json:"sachkonto"`
	BUSchluessel *string             `db:"bu_schluessel" json:"bu_schluessel"`
	VATRate      decimal.NullDecimal `db:"vat_rate" json:"vat_rate"`
	VATAmount    decimal.NullDecimal `db:"vat_amount" json:"vat_amount"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
}

// QueryResult is the answer to a natural-language question.
type QueryResult struct {
	SQL     string                   `json:"sql"`
	Results []map[string]interface{} `json:"results"`
}

// DashboardStats holds the headline numbers of the dashboard.
type DashboardStats struct {
	TotalInvoices     int64    `db:"totalInvoices" json:"totalInvoices"`
	TotalSpend        *float64 `db:"totalSpend" json:"totalSpend"`
	AvgInvoiceValue   *float64 `db:"avgInvoiceValue" json:"avgInvoiceValue"`
	DocumentsUploaded int64    `db:"documentsUploaded" json:"documentsUploaded"`
}

// InvoiceTrend is the invoiced value and count for one month.
type InvoiceTrend struct {
	Month string  `db:"month" json:"month"`
	Value float64 `db:"value" json:"value"`
	Count int64   `db:"count" json:"count"`
}

// VendorSpend is the total invoiced value attributed to one vendor.
type VendorSpend struct {
	Vendor string  `db:"vendor" json:"vendor"`
	Spend  float64 `db:"spend" json:"spend"`
}

// CategorySpend is the total invoiced value of one spend category.
type CategorySpend struct {
	Category string  `db:"category" json:"category"`
	Spend    float64 `db:"spend" json:"spend"`
}

// CashOutflow is the expected payment amount for one month.
type CashOutflow struct {
	Month  *string `db:"month" json:"month"`
	Amount float64 `db:"amount" json:"amount"`
}

// InvoiceRow is one row of the dashboard invoice table.
type InvoiceRow struct {
	ID            int64    `db:"id" json:"id"`
	InvoiceNumber *string  `db:"invoiceNumber" json:"invoiceNumber"`
	InvoiceDate   NullDate `db:"invoiceDate" json:"invoiceDate"`
	Amount        *float64 `db:"amount" json:"amount"`
	Currency      *string  `db:"currency" json:"currency"`
	Vendor        *string  `db:"vendor" json:"vendor"`
	Status        string   `db:"status" json:"status"`
	Category      string   `db:"category" json:"category"`
}

// InvoiceFilter narrows the invoice table.
type InvoiceFilter struct {
	Search string
	Limit  int
}

// TableCounts is the row count of each data table.
type TableCounts struct {
	Documents int64 `db:"documents" json:"documents"`
	Invoices  int64 `db:"invoices" json:"invoices"`
	Vendors   int64 `db:"vendors" json:"vendors"`
	Customers int64 `db:"customers" json:"customers"`
	LineItems int64 `db:"line_items" json:"line_items"`
}
