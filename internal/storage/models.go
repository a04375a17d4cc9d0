package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrboora04/focuspoint/internal/types"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so repos can run inside withTx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// dateColumn renders a date for a TEXT column; the zero date becomes "".
func dateColumn(d types.Date) string {
	return d.String()
}

// nullDateColumn renders a date for a nullable TEXT column.
func nullDateColumn(d types.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func parseDateColumn(s string) (types.Date, error) {
	if s == "" {
		return types.Date{}, nil
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return types.Date{}, fmt.Errorf("date column: %w", err)
	}
	return d, nil
}
