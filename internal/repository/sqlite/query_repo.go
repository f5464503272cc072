package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"findash/internal/port"
)

type queryExecutor struct {
	db *sqlx.DB
}

// NewQueryExecutor creates a QueryExecutor that runs statements verbatim.
func NewQueryExecutor(db *sqlx.DB) port.QueryExecutor {
	return &queryExecutor{db: db}
}

// Execute runs query and returns every row as a column-name keyed map.
// Text columns are returned as strings rather than byte slices.
func (e *queryExecutor) Execute(ctx context.Context, query string) ([]map[string]interface{}, error) {
	rows, err := e.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("queryExecutor.Execute: %w", err)
	}
	defer rows.Close()

	results := []map[string]interface{}{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("queryExecutor.Execute scan: %w", err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("queryExecutor.Execute rows: %w", err)
	}
	return results, nil
}
