// Package memory is an in-process mission store used by --ephemeral runs and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mrboora04/focuspoint/internal/types"
)

type Store struct {
	mu       sync.RWMutex
	missions map[string]types.Mission
	taps     map[string]types.TapTarget
	active   string
}

func NewStore() *Store {
	return &Store{
		missions: make(map[string]types.Mission),
		taps:     make(map[string]types.TapTarget),
	}
}

func (s *Store) ListMissions(_ context.Context) ([]types.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Mission, 0, len(s.missions))
	for _, m := range s.missions {
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetMission(_ context.Context, id string) (*types.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.missions[id]
	if !ok {
		return nil, nil
	}
	c := m.Clone()
	return &c, nil
}

func (s *Store) SaveMission(_ context.Context, m *types.Mission) error {
	if m == nil || m.ID == "" {
		return errors.New("mission id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.missions[m.ID] = m.Clone()
	return nil
}

func (s *Store) DeleteMission(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.missions, id)
	return nil
}

func (s *Store) ActiveMissionID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, nil
}

func (s *Store) SetActiveMissionID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = id
	return nil
}

func (s *Store) ListTapTargets(_ context.Context) ([]types.TapTarget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.TapTarget, 0, len(s.taps))
	for _, t := range s.taps {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *Store) SaveTapTarget(_ context.Context, t *types.TapTarget) error {
	if t == nil || t.ID == "" {
		return errors.New("tap target id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.taps[t.ID] = *t
	return nil
}

func (s *Store) Close() error { return nil }
