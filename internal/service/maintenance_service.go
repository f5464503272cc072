package service

import (
	"context"

	"findash/internal/domain"
	"findash/internal/ingest"
	"findash/internal/port"
)

// InspectSampleSize is the number of invoices and vendors shown by Inspect.
const InspectSampleSize = 3

// DedupeResult reports what a dedupe pass removed.
type DedupeResult struct {
	InvoicesRemoved  int64 `json:"invoices_removed"`
	LineItemsRemoved int64 `json:"line_items_removed"`
}

// InspectReport summarizes an export file and the database contents.
type InspectReport struct {
	SourceRecords int                 `json:"source_records"`
	Counts        *domain.TableCounts `json:"counts"`
	Invoices      []domain.Invoice    `json:"sample_invoices"`
	Vendors       []domain.Vendor     `json:"sample_vendors"`
}

// MaintenanceService backs the dedupe and inspect tools.
type MaintenanceService interface {
	Dedupe(ctx context.Context) (*DedupeResult, error)
	// Inspect counts the records of source and samples the database. An empty
	// source skips the file check.
	Inspect(ctx context.Context, source string) (*InspectReport, error)
}

type maintenanceService struct {
	repo   port.MaintenanceRepository
	reader *ingest.Reader
}

// NewMaintenanceService creates a new MaintenanceService implementation.
func NewMaintenanceService(repo port.MaintenanceRepository, reader *ingest.Reader) MaintenanceService {
	return &maintenanceService{repo: repo, reader: reader}
}

func (s *maintenanceService) Dedupe(ctx context.Context) (*DedupeResult, error) {
	invoices, lineItems, err := s.repo.DedupeInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return &DedupeResult{InvoicesRemoved: invoices, LineItemsRemoved: lineItems}, nil
}

func (s *maintenanceService) Inspect(ctx context.Context, source string) (*InspectReport, error) {
	report := &InspectReport{}

	if source != "" {
		records, err := s.reader.Records(ctx, source)
		if err != nil {
			return nil, err
		}
		report.SourceRecords = len(records)
	}

	counts, err := s.repo.CountRows(ctx)
	if err != nil {
		return nil, err
	}
	report.Counts = counts

	if report.Invoices, err = s.repo.SampleInvoices(ctx, InspectSampleSize); err != nil {
		return nil, err
	}
	if report.Vendors, err = s.repo.SampleVendors(ctx, InspectSampleSize); err != nil {
		return nil, err
	}
	return report, nil
}
