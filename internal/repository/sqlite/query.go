package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
)

// compile-time check that *DB implements repository.QueryRunner
var _ repository.QueryRunner = (*DB)(nil)

// RunQuery executes an operator-supplied query string verbatim and returns
// every resulting row.
//
// This is the administrative escape hatch: no validation, no rewriting.
// The trust boundary lives in the service layer, which only lets verified
// administrators reach this method and audit-logs each call. Never route
// non-administrative input here.
func (db *DB) RunQuery(ctx context.Context, query string, args ...any) (*model.QueryResult, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: running query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading query columns: %w", err)
	}

	result := &model.QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning query row: %w", err)
		}

		// The driver hands TEXT back as []byte; convert so results
		// serialize as strings rather than base64 blobs.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating query rows: %w", err)
	}

	return result, nil
}
