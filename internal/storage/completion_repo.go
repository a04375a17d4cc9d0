package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

// CompletionRepo stores the append-only daily log of completed tasks.
type CompletionRepo struct {
	db dbtx
}

func NewCompletionRepo(db dbtx) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// Sync appends the records of log that are not stored yet. Records already
// stored are never rewritten; dates missing from log (after a restart) are
// dropped.
func (r *CompletionRepo) Sync(ctx context.Context, missionID string, log map[types.Date][]types.CompletionRecord) error {
	counts, err := r.counts(ctx, missionID)
	if err != nil {
		return err
	}
	for d, n := range counts {
		if recs, ok := log[d]; ok && len(recs) >= n {
			continue
		}
		// The engine only ever appends, so a shorter slice means the log was reset.
		if _, err := r.db.ExecContext(ctx, `DELETE FROM mission_daily_log WHERE mission_id = ? AND date = ?`, missionID, d.String()); err != nil {
			return fmt.Errorf("completion delete: %w", err)
		}
		counts[d] = 0
	}
	for d, recs := range log {
		for seq := counts[d]; seq < len(recs); seq++ {
			rec := recs[seq]
			_, err := r.db.ExecContext(ctx, `
				INSERT INTO mission_daily_log (mission_id, date, seq, title, points, completed_at, priority)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, missionID, d.String(), seq, rec.Title, rec.Points, rec.Timestamp.UTC(), string(rec.Priority))
			if err != nil {
				return fmt.Errorf("completion insert: %w", err)
			}
		}
	}
	return nil
}

func (r *CompletionRepo) counts(ctx context.Context, missionID string) (map[types.Date]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, COUNT(*)
		FROM mission_daily_log
		WHERE mission_id = ?
		GROUP BY date
	`, missionID)
	if err != nil {
		return nil, fmt.Errorf("completion counts: %w", err)
	}
	defer rows.Close()

	out := map[types.Date]int{}
	for rows.Next() {
		var (
			date string
			n    int
		)
		if err := rows.Scan(&date, &n); err != nil {
			return nil, fmt.Errorf("completion counts scan: %w", err)
		}
		d, err := parseDateColumn(date)
		if err != nil {
			return nil, err
		}
		out[d] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion counts rows: %w", err)
	}
	return out, nil
}

func (r *CompletionRepo) List(ctx context.Context, missionID string) (map[types.Date][]types.CompletionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, title, points, completed_at, priority
		FROM mission_daily_log
		WHERE mission_id = ?
		ORDER BY date ASC, seq ASC
	`, missionID)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	out := map[types.Date][]types.CompletionRecord{}
	for rows.Next() {
		var (
			date        string
			rec         types.CompletionRecord
			completedAt time.Time
			priority    string
		)
		if err := rows.Scan(&date, &rec.Title, &rec.Points, &completedAt, &priority); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		d, err := parseDateColumn(date)
		if err != nil {
			return nil, err
		}
		rec.Timestamp = completedAt
		rec.Priority = types.Priority(priority)
		out[d] = append(out[d], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion list rows: %w", err)
	}
	return out, nil
}

func (r *CompletionRepo) DeleteMission(ctx context.Context, missionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mission_daily_log WHERE mission_id = ?`, missionID); err != nil {
		return fmt.Errorf("completion delete: %w", err)
	}
	return nil
}
