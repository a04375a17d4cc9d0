package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

// MissionRepo stores the scalar part of a mission: its config, the running
// score and the pending breach. Tasks, history and the daily log live in
// their own tables.
type MissionRepo struct {
	db dbtx
}

func NewMissionRepo(db dbtx) *MissionRepo {
	return &MissionRepo{db: db}
}

const missionColumns = `id, name, duration_days, daily_point_target, start_date, daily_habits,
	penalty_type, penalty_detail, buffer_days, frequency, scheduled_weekdays,
	today_score, score_date, pending_date, pending_mercy, created_at`

func (r *MissionRepo) Upsert(ctx context.Context, m *types.Mission) error {
	habits, err := json.Marshal(m.Config.DailyHabits)
	if err != nil {
		return fmt.Errorf("marshal habits: %w", err)
	}
	weekdays, err := json.Marshal(m.Config.ScheduledWeekdays)
	if err != nil {
		return fmt.Errorf("marshal weekdays: %w", err)
	}

	var (
		pendingDate  any
		pendingMercy int
	)
	if m.Pending != nil {
		pendingDate = nullDateColumn(m.Pending.Date)
		pendingMercy = boolToInt(m.Pending.MercyApplied)
	}

	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO missions (`+missionColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			duration_days = excluded.duration_days,
			daily_point_target = excluded.daily_point_target,
			start_date = excluded.start_date,
			daily_habits = excluded.daily_habits,
			penalty_type = excluded.penalty_type,
			penalty_detail = excluded.penalty_detail,
			buffer_days = excluded.buffer_days,
			frequency = excluded.frequency,
			scheduled_weekdays = excluded.scheduled_weekdays,
			today_score = excluded.today_score,
			score_date = excluded.score_date,
			pending_date = excluded.pending_date,
			pending_mercy = excluded.pending_mercy,
			updated_at = excluded.updated_at
	`, m.ID, m.Config.Name, m.Config.DurationDays, m.Config.DailyPointTarget,
		dateColumn(m.Config.StartDate), string(habits),
		string(m.Config.PenaltyType), m.Config.PenaltyDetail, m.Config.BufferDays,
		string(m.Config.Frequency), string(weekdays),
		m.TodayScore, dateColumn(m.ScoreDate), pendingDate, pendingMercy,
		createdAt.UTC(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mission upsert: %w", err)
	}
	return nil
}

func (r *MissionRepo) Get(ctx context.Context, id string) (*types.Mission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+missionColumns+` FROM missions WHERE id = ?`, id)
	m, err := scanMissionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *MissionRepo) ListAll(ctx context.Context) ([]types.Mission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("mission list: %w", err)
	}
	defer rows.Close()

	var out []types.Mission
	for rows.Next() {
		m, err := scanMissionRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mission list rows: %w", err)
	}
	return out, nil
}

func (r *MissionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mission delete: %w", err)
	}
	return nil
}

func scanMissionRow(row scanner) (*types.Mission, error) {
	var (
		m             types.Mission
		startDate     string
		habitsRaw     sql.NullString
		penaltyType   string
		penaltyDetail sql.NullString
		frequency     string
		weekdaysRaw   sql.NullString
		scoreDate     string
		pendingDate   sql.NullString
		pendingMercy  int
		createdAt     sql.NullTime
	)
	if err := row.Scan(
		&m.ID, &m.Config.Name, &m.Config.DurationDays, &m.Config.DailyPointTarget,
		&startDate, &habitsRaw, &penaltyType, &penaltyDetail, &m.Config.BufferDays,
		&frequency, &weekdaysRaw, &m.TodayScore, &scoreDate, &pendingDate, &pendingMercy,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("mission scan: %w", err)
	}

	var err error
	if m.Config.StartDate, err = parseDateColumn(startDate); err != nil {
		return nil, err
	}
	if m.ScoreDate, err = parseDateColumn(scoreDate); err != nil {
		return nil, err
	}
	if habitsRaw.Valid && habitsRaw.String != "" && habitsRaw.String != "null" {
		if err := json.Unmarshal([]byte(habitsRaw.String), &m.Config.DailyHabits); err != nil {
			return nil, fmt.Errorf("unmarshal habits: %w", err)
		}
	}
	if weekdaysRaw.Valid && weekdaysRaw.String != "" && weekdaysRaw.String != "null" {
		if err := json.Unmarshal([]byte(weekdaysRaw.String), &m.Config.ScheduledWeekdays); err != nil {
			return nil, fmt.Errorf("unmarshal weekdays: %w", err)
		}
	}
	m.Config.PenaltyType = types.PenaltyType(penaltyType)
	m.Config.Frequency = types.Frequency(frequency)
	if penaltyDetail.Valid {
		m.Config.PenaltyDetail = penaltyDetail.String
	}
	if pendingDate.Valid && pendingDate.String != "" {
		d, err := parseDateColumn(pendingDate.String)
		if err != nil {
			return nil, err
		}
		m.Pending = &types.Breach{Date: d, MercyApplied: pendingMercy != 0}
	}
	if createdAt.Valid {
		m.CreatedAt = createdAt.Time
	}
	m.History = map[types.Date]types.DayStatus{}
	m.DailyLog = map[types.Date][]types.CompletionRecord{}
	return &m, nil
}
