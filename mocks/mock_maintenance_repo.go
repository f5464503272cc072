package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"findash/internal/domain"
)

// MockMaintenanceRepo is a mock implementation of port.MaintenanceRepository.
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) DedupeInvoices(ctx context.Context) (invoices, lineItems int64, err error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockMaintenanceRepo) CountRows(ctx context.Context) (*domain.TableCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableCounts), args.Error(1)
}

func (m *MockMaintenanceRepo) SampleInvoices(ctx context.Context, limit int) ([]domain.Invoice, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockMaintenanceRepo) SampleVendors(ctx context.Context, limit int) ([]domain.Vendor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}
