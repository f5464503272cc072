package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"findash/internal/domain"
	"findash/internal/port"
)

// MockIngestStore is a mock implementation of port.IngestStore.
type MockIngestStore struct {
	mock.Mock
}

func (m *MockIngestStore) Begin(ctx context.Context) (port.IngestTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.IngestTx), args.Error(1)
}

// MockIngestTx is a mock implementation of port.IngestTx.
type MockIngestTx struct {
	mock.Mock
}

func (m *MockIngestTx) EnsureOrganization(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockIngestTx) EnsureDepartment(ctx context.Context, dept *domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockIngestTx) EnsureUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockIngestTx) InsertDocument(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockIngestTx) CreateVendor(ctx context.Context, vendor *domain.Vendor) (int64, error) {
	args := m.Called(ctx, vendor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIngestTx) CreateCustomer(ctx context.Context, customer *domain.Customer) (int64, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIngestTx) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (int64, error) {
	args := m.Called(ctx, invoice)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIngestTx) CreateLineItem(ctx context.Context, item *domain.LineItem) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIngestTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockIngestTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}
