package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"findash/internal/domain"
	"findash/internal/export"
	"findash/internal/port"
)

const (
	TrendMonths         = 12
	TopVendorCount      = 10
	CashOutflowMonths   = 12
	DefaultInvoiceLimit = 100
	MaxInvoiceLimit     = 1000
)

// ExportFile is a rendered invoice table export.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DashboardService provides the dashboard aggregates and invoice table.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	InvoiceTrends(ctx context.Context) ([]domain.InvoiceTrend, error)
	TopVendors(ctx context.Context) ([]domain.VendorSpend, error)
	CategorySpend(ctx context.Context) ([]domain.CategorySpend, error)
	CashOutflow(ctx context.Context) ([]domain.CashOutflow, error)
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRow, error)
	ExportInvoices(ctx context.Context, filter domain.InvoiceFilter, format domain.ExportFormat) (*ExportFile, error)
}

type dashboardService struct {
	repo port.DashboardRepository
	now  func() time.Time
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(repo port.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.repo.GetStats(ctx)
}

func (s *dashboardService) InvoiceTrends(ctx context.Context) ([]domain.InvoiceTrend, error) {
	return s.repo.InvoiceTrends(ctx, TrendMonths)
}

func (s *dashboardService) TopVendors(ctx context.Context) ([]domain.VendorSpend, error) {
	return s.repo.TopVendors(ctx, TopVendorCount)
}

func (s *dashboardService) CategorySpend(ctx context.Context) ([]domain.CategorySpend, error) {
	return s.repo.CategorySpend(ctx)
}

func (s *dashboardService) CashOutflow(ctx context.Context) ([]domain.CashOutflow, error) {
	return s.repo.CashOutflow(ctx, CashOutflowMonths)
}

func (s *dashboardService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRow, error) {
	return s.repo.ListInvoices(ctx, normalizeFilter(filter))
}

func (s *dashboardService) ExportInvoices(ctx context.Context, filter domain.InvoiceFilter, format domain.ExportFormat) (*ExportFile, error) {
	contentType, ok := domain.ExportContentTypes[format]
	if !ok {
		return nil, domain.ErrInvalidExportFormat
	}

	rows, err := s.repo.ListInvoices(ctx, normalizeFilter(filter))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, rows); err != nil {
		return nil, err
	}

	return &ExportFile{
		Filename:    export.BuildFilename(format, s.now()),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

// normalizeFilter trims the search term and clamps the limit to
// [1, MaxInvoiceLimit], using DefaultInvoiceLimit when unset.
func normalizeFilter(f domain.InvoiceFilter) domain.InvoiceFilter {
	f.Search = strings.TrimSpace(f.Search)
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultInvoiceLimit
	case f.Limit > MaxInvoiceLimit:
		f.Limit = MaxInvoiceLimit
	}
	return f
}
