package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSQLGenerator is a mock implementation of port.SQLGenerator.
type MockSQLGenerator struct {
	mock.Mock
}

func (m *MockSQLGenerator) GenerateSQL(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

// MockQueryExecutor is a mock implementation of port.QueryExecutor.
type MockQueryExecutor struct {
	mock.Mock
}

func (m *MockQueryExecutor) Execute(ctx context.Context, query string) ([]map[string]interface{}, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}
