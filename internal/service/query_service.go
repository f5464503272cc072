package service

import (
	"context"
	"fmt"
	"strings"

	"findash/internal/domain"
	"findash/internal/port"
)

// QueryService answers natural-language questions by generating SQL and
// running it against the database.
type QueryService interface {
	// Ask returns the generated SQL and its rows. When the SQL was generated
	// but failed to run, the result carries the SQL alongside an error
	// wrapping domain.ErrQueryExecution.
	Ask(ctx context.Context, question string) (*domain.QueryResult, error)
}

type queryService struct {
	generator port.SQLGenerator
	executor  port.QueryExecutor
}

// NewQueryService creates a new QueryService implementation.
func NewQueryService(generator port.SQLGenerator, executor port.QueryExecutor) QueryService {
	return &queryService{generator: generator, executor: executor}
}

func (s *queryService) Ask(ctx context.Context, question string) (*domain.QueryResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrQueryRequired
	}

	sql, err := s.generator.GenerateSQL(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSQLGeneration, err)
	}

	result := &domain.QueryResult{SQL: sql, Results: []map[string]interface{}{}}
	rows, err := s.executor.Execute(ctx, sql)
	if err != nil {
		return result, fmt.Errorf("%w: %w", domain.ErrQueryExecution, err)
	}
	if rows != nil {
		result.Results = rows
	}
	return result, nil
}
