package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

type TapRepo struct {
	db dbtx
}

func NewTapRepo(db dbtx) *TapRepo {
	return &TapRepo{db: db}
}

func (r *TapRepo) Upsert(ctx context.Context, t *types.TapTarget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tap_targets (id, title, target, count, total_time_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			target = excluded.target,
			count = excluded.count,
			total_time_ms = excluded.total_time_ms
	`, t.ID, t.Title, t.Target, t.Count, t.TotalTime.Milliseconds())
	if err != nil {
		return fmt.Errorf("tap upsert: %w", err)
	}
	return nil
}

func (r *TapRepo) ListAll(ctx context.Context) ([]types.TapTarget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, target, count, total_time_ms
		FROM tap_targets
		ORDER BY title ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("tap list: %w", err)
	}
	defer rows.Close()

	var out []types.TapTarget
	for rows.Next() {
		var (
			t  types.TapTarget
			ms int64
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Target, &t.Count, &ms); err != nil {
			return nil, fmt.Errorf("tap scan: %w", err)
		}
		t.TotalTime = time.Duration(ms) * time.Millisecond
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tap list rows: %w", err)
	}
	return out, nil
}
