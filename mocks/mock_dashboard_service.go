package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"findash/internal/domain"
	"findash/internal/service"
)

// MockDashboardService is a mock implementation of service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockDashboardService) InvoiceTrends(ctx context.Context) ([]domain.InvoiceTrend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceTrend), args.Error(1)
}

func (m *MockDashboardService) TopVendors(ctx context.Context) ([]domain.VendorSpend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorSpend), args.Error(1)
}

func (m *MockDashboardService) CategorySpend(ctx context.Context) ([]domain.CategorySpend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySpend), args.Error(1)
}

func (m *MockDashboardService) CashOutflow(ctx context.Context) ([]domain.CashOutflow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashOutflow), args.Error(1)
}

func (m *MockDashboardService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceRow), args.Error(1)
}

func (m *MockDashboardService) ExportInvoices(ctx context.Context, filter domain.InvoiceFilter, format domain.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}
