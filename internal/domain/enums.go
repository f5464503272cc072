package domain

// ExportFormat is the file format of an invoice table export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps export formats to their MIME type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Placeholder names used for rows the extraction did not name.
const (
	UnknownVendorName  = "Unknown Vendor"
	OrganizationPrefix = "Organization "
	DepartmentPrefix   = "Department "
	UserPrefix         = "User "
)

// Invoice table status values.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusOverdue = "overdue"
)
