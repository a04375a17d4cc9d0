// Package postgres is a PostgreSQL mission store for sharing missions across
// machines. Nested mission parts are kept as JSONB documents.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrboora04/focuspoint/internal/types"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open connects to url, pings the server and ensures the schema exists.
func Open(ctx context.Context, url string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := NewStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the tables if they don't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS focus_missions (
			id          TEXT PRIMARY KEY,
			config      JSONB NOT NULL,
			tasks       JSONB NOT NULL DEFAULT '[]',
			history     JSONB NOT NULL DEFAULT '{}',
			daily_log   JSONB NOT NULL DEFAULT '{}',
			today_score INTEGER NOT NULL DEFAULT 0,
			score_date  TEXT NOT NULL DEFAULT '',
			pending     JSONB,
			created_at  TIMESTAMPTZ DEFAULT NOW(),
			updated_at  TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS focus_app_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS focus_tap_targets (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			target        INTEGER NOT NULL,
			count         INTEGER NOT NULL DEFAULT 0,
			total_time_ms BIGINT NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

const missionColumns = `id, config, tasks, history, daily_log, today_score, score_date, pending, created_at`

func (s *Store) SaveMission(ctx context.Context, m *types.Mission) error {
	config, err := json.Marshal(m.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tasks := m.Tasks
	if tasks == nil {
		tasks = []types.Task{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	historyJSON, err := json.Marshal(nonNilHistory(m.History))
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	logJSON, err := json.Marshal(nonNilLog(m.DailyLog))
	if err != nil {
		return fmt.Errorf("marshal daily log: %w", err)
	}
	var pendingJSON *string
	if m.Pending != nil {
		data, err := json.Marshal(m.Pending)
		if err != nil {
			return fmt.Errorf("marshal pending: %w", err)
		}
		p := string(data)
		pendingJSON = &p
	}
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO focus_missions (`+missionColumns+`, updated_at)
		VALUES ($1, $2::jsonb, $3::jsonb, $4::jsonb, $5::jsonb, $6, $7, $8::jsonb, $9, NOW())
		ON CONFLICT (id) DO UPDATE SET
			config = EXCLUDED.config,
			tasks = EXCLUDED.tasks,
			history = EXCLUDED.history,
			daily_log = EXCLUDED.daily_log,
			today_score = EXCLUDED.today_score,
			score_date = EXCLUDED.score_date,
			pending = EXCLUDED.pending,
			updated_at = NOW()`,
		m.ID, string(config), string(tasksJSON), string(historyJSON), string(logJSON),
		m.TodayScore, m.ScoreDate.String(), pendingJSON, createdAt.Truncate(time.Microsecond))
	if err != nil {
		return fmt.Errorf("save mission %s: %w", m.ID, err)
	}
	return nil
}

func (s *Store) GetMission(ctx context.Context, id string) (*types.Mission, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+missionColumns+` FROM focus_missions WHERE id = $1`, id)
	m, err := scanMission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get mission %s: %w", id, err)
	}
	return m, nil
}

func (s *Store) ListMissions(ctx context.Context) ([]types.Mission, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+missionColumns+` FROM focus_missions ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	defer rows.Close()

	var out []types.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mission: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *Store) DeleteMission(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM focus_missions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete mission %s: %w", id, err)
	}
	return nil
}

func (s *Store) ActiveMissionID(ctx context.Context) (string, error) {
	var v string
	err := s.pool.QueryRow(ctx, `SELECT value FROM focus_app_state WHERE key = 'active_mission_id'`).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get active mission: %w", err)
	}
	return v, nil
}

func (s *Store) SetActiveMissionID(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO focus_app_state (key, value) VALUES ('active_mission_id', $1)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, id)
	if err != nil {
		return fmt.Errorf("set active mission: %w", err)
	}
	return nil
}

func (s *Store) ListTapTargets(ctx context.Context) ([]types.TapTarget, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, title, target, count, total_time_ms FROM focus_tap_targets ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tap targets: %w", err)
	}
	defer rows.Close()

	var out []types.TapTarget
	for rows.Next() {
		var (
			t  types.TapTarget
			ms int64
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Target, &t.Count, &ms); err != nil {
			return nil, fmt.Errorf("scan tap target: %w", err)
		}
		t.TotalTime = time.Duration(ms) * time.Millisecond
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SaveTapTarget(ctx context.Context, t *types.TapTarget) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO focus_tap_targets (id, title, target, count, total_time_ms)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			target = EXCLUDED.target,
			count = EXCLUDED.count,
			total_time_ms = EXCLUDED.total_time_ms`,
		t.ID, t.Title, t.Target, t.Count, t.TotalTime.Milliseconds())
	if err != nil {
		return fmt.Errorf("save tap target %s: %w", t.ID, err)
	}
	return nil
}

func scanMission(row pgx.Row) (*types.Mission, error) {
	var (
		m                                         types.Mission
		config, tasks, history, dailyLog, pending []byte
		scoreDate                                 string
		createdAt                                 *time.Time
	)
	if err := row.Scan(&m.ID, &config, &tasks, &history, &dailyLog, &m.TodayScore, &scoreDate, &pending, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(config, &m.Config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := json.Unmarshal(tasks, &m.Tasks); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}
	m.History = map[types.Date]types.DayStatus{}
	if err := json.Unmarshal(history, &m.History); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	m.DailyLog = map[types.Date][]types.CompletionRecord{}
	if err := json.Unmarshal(dailyLog, &m.DailyLog); err != nil {
		return nil, fmt.Errorf("unmarshal daily log: %w", err)
	}
	if len(pending) > 0 {
		var b types.Breach
		if err := json.Unmarshal(pending, &b); err != nil {
			return nil, fmt.Errorf("unmarshal pending: %w", err)
		}
		m.Pending = &b
	}
	if scoreDate != "" {
		d, err := types.ParseDate(scoreDate)
		if err != nil {
			return nil, err
		}
		m.ScoreDate = d
	}
	if createdAt != nil {
		m.CreatedAt = *createdAt
	}
	return &m, nil
}

func nonNilHistory(h map[types.Date]types.DayStatus) map[types.Date]types.DayStatus {
	if h == nil {
		return map[types.Date]types.DayStatus{}
	}
	return h
}

func nonNilLog(l map[types.Date][]types.CompletionRecord) map[types.Date][]types.CompletionRecord {
	if l == nil {
		return map[types.Date][]types.CompletionRecord{}
	}
	return l
}
