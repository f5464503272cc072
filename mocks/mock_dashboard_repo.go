package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"findash/internal/domain"
)

// MockDashboardRepo is a mock implementation of port.DashboardRepository.
type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockDashboardRepo) InvoiceTrends(ctx context.Context, months int) ([]domain.InvoiceTrend, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceTrend), args.Error(1)
}

func (m *MockDashboardRepo) TopVendors(ctx context.Context, limit int) ([]domain.VendorSpend, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorSpend), args.Error(1)
}

func (m *MockDashboardRepo) CategorySpend(ctx context.Context) ([]domain.CategorySpend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySpend), args.Error(1)
}

func (m *MockDashboardRepo) CashOutflow(ctx context.Context, months int) ([]domain.CashOutflow, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashOutflow), args.Error(1)
}

func (m *MockDashboardRepo) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceRow), args.Error(1)
}
