package domain

import "errors"

var (
	ErrQueryRequired       = errors.New("query is required")
	ErrSQLGeneration       = errors.New("sql generation failed")
	ErrQueryExecution      = errors.New("query execution failed")
	ErrInvalidExportFormat = errors.New("unsupported export format")

	ErrInvalidRecord       = errors.New("document record is not a JSON object")
	ErrDocumentMissingID   = errors.New("document is missing _id")
	ErrDocumentMissingName = errors.New("document is missing name")
	ErrUnsupportedSource   = errors.New("unsupported ingest source")
)
