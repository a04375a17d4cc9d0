package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrboora04/focuspoint/internal/types"
)

// Store is the SQLite-backed mission store. Each SaveMission writes the whole
// mission snapshot in one transaction.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenStore opens the database at path, migrates it and wraps it in a Store.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) GetMission(ctx context.Context, id string) (*types.Mission, error) {
	m, err := NewMissionRepo(s.db).Get(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) ListMissions(ctx context.Context) ([]types.Mission, error) {
	missions, err := NewMissionRepo(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range missions {
		if err := s.loadChildren(ctx, &missions[i]); err != nil {
			return nil, err
		}
	}
	return missions, nil
}

func (s *Store) loadChildren(ctx context.Context, m *types.Mission) error {
	r := reposOn(s.db)
	tasks, err := r.tasks.List(ctx, m.ID)
	if err != nil {
		return err
	}
	history, err := r.history.List(ctx, m.ID)
	if err != nil {
		return err
	}
	log, err := r.completions.List(ctx, m.ID)
	if err != nil {
		return err
	}
	m.Tasks = tasks
	m.History = history
	m.DailyLog = log
	return nil
}

func (s *Store) SaveMission(ctx context.Context, m *types.Mission) error {
	return withTx(ctx, s.db, func(r missionRepos) error {
		if err := r.missions.Upsert(ctx, m); err != nil {
			return err
		}
		if err := r.tasks.Replace(ctx, m.ID, m.Tasks); err != nil {
			return err
		}
		if err := r.history.Sync(ctx, m.ID, m.History); err != nil {
			return err
		}
		return r.completions.Sync(ctx, m.ID, m.DailyLog)
	})
}

func (s *Store) DeleteMission(ctx context.Context, id string) error {
	return withTx(ctx, s.db, func(r missionRepos) error {
		if err := r.tasks.DeleteMission(ctx, id); err != nil {
			return err
		}
		if err := r.history.DeleteMission(ctx, id); err != nil {
			return err
		}
		if err := r.completions.DeleteMission(ctx, id); err != nil {
			return err
		}
		return r.missions.Delete(ctx, id)
	})
}

func (s *Store) ActiveMissionID(ctx context.Context) (string, error) {
	return NewStateRepo(s.db).Get(ctx, keyActiveMission)
}

func (s *Store) SetActiveMissionID(ctx context.Context, id string) error {
	return NewStateRepo(s.db).Set(ctx, keyActiveMission, id)
}

func (s *Store) ListTapTargets(ctx context.Context) ([]types.TapTarget, error) {
	return NewTapRepo(s.db).ListAll(ctx)
}

func (s *Store) SaveTapTarget(ctx context.Context, t *types.TapTarget) error {
	if t.ID == "" {
		return fmt.Errorf("tap target id is required")
	}
	return NewTapRepo(s.db).Upsert(ctx, t)
}
