package storage

import (
	"context"
	"fmt"

	"github.com/mrboora04/focuspoint/internal/types"
)

// HistoryRepo stores the per-date status map of each mission.
type HistoryRepo struct {
	db dbtx
}

func NewHistoryRepo(db dbtx) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Sync makes the stored history equal to history. Dates already stored with
// the same status are left alone; a restart drops every stored date.
func (r *HistoryRepo) Sync(ctx context.Context, missionID string, history map[types.Date]types.DayStatus) error {
	stored, err := r.List(ctx, missionID)
	if err != nil {
		return err
	}
	for d := range stored {
		if _, ok := history[d]; ok {
			continue
		}
		if _, err := r.db.ExecContext(ctx, `DELETE FROM mission_history WHERE mission_id = ? AND date = ?`, missionID, d.String()); err != nil {
			return fmt.Errorf("history delete: %w", err)
		}
	}
	for d, status := range history {
		if prev, ok := stored[d]; ok && prev == status {
			continue
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO mission_history (mission_id, date, status)
			VALUES (?, ?, ?)
			ON CONFLICT(mission_id, date) DO UPDATE SET status = excluded.status
		`, missionID, d.String(), string(status))
		if err != nil {
			return fmt.Errorf("history upsert: %w", err)
		}
	}
	return nil
}

func (r *HistoryRepo) List(ctx context.Context, missionID string) (map[types.Date]types.DayStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, status
		FROM mission_history
		WHERE mission_id = ?
		ORDER BY date ASC
	`, missionID)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	out := map[types.Date]types.DayStatus{}
	for rows.Next() {
		var date, status string
		if err := rows.Scan(&date, &status); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		d, err := parseDateColumn(date)
		if err != nil {
			return nil, err
		}
		out[d] = types.DayStatus(status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}

func (r *HistoryRepo) DeleteMission(ctx context.Context, missionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mission_history WHERE mission_id = ?`, missionID); err != nil {
		return fmt.Errorf("history delete: %w", err)
	}
	return nil
}
