package storage

import (
	"context"
	"fmt"

	"github.com/mrboora04/focuspoint/internal/types"
)

// TaskRepo stores the ordered task list of each mission.
type TaskRepo struct {
	db dbtx
}

func NewTaskRepo(db dbtx) *TaskRepo {
	return &TaskRepo{db: db}
}

// Replace swaps the stored list for tasks, keeping their order.
func (r *TaskRepo) Replace(ctx context.Context, missionID string, tasks []types.Task) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mission_tasks WHERE mission_id = ?`, missionID); err != nil {
		return fmt.Errorf("task clear: %w", err)
	}
	for i, t := range tasks {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO mission_tasks (mission_id, id, position, title, priority, status)
			VALUES (?, ?, ?, ?, ?, ?)
		`, missionID, t.ID, i, t.Title, string(t.Priority), string(t.Status))
		if err != nil {
			return fmt.Errorf("task insert: %w", err)
		}
	}
	return nil
}

func (r *TaskRepo) List(ctx context.Context, missionID string) ([]types.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, priority, status
		FROM mission_tasks
		WHERE mission_id = ?
		ORDER BY position ASC
	`, missionID)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	out := []types.Task{}
	for rows.Next() {
		var (
			t        types.Task
			priority string
			status   string
		)
		if err := rows.Scan(&t.ID, &t.Title, &priority, &status); err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		t.Priority = types.Priority(priority)
		t.Status = types.TaskStatus(status)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) DeleteMission(ctx context.Context, missionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mission_tasks WHERE mission_id = ?`, missionID); err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}
