package port

import "context"

// SQLGenerator turns a natural-language question into SQL text. The returned
// SQL is trusted and executed verbatim.
type SQLGenerator interface {
	GenerateSQL(ctx context.Context, question string) (string, error)
}

// QueryExecutor runs arbitrary SQL and returns the rows as column->value maps.
type QueryExecutor interface {
	Execute(ctx context.Context, query string) ([]map[string]interface{}, error)
}
