package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mrboora04/focuspoint/internal/observability"
	"github.com/mrboora04/focuspoint/internal/types"
)

// Store persists missions and the rest of the app state.
// Get methods return nil, nil when the record does not exist.
type Store interface {
	ListMissions(ctx context.Context) ([]types.Mission, error)
	GetMission(ctx context.Context, id string) (*types.Mission, error)
	SaveMission(ctx context.Context, m *types.Mission) error
	DeleteMission(ctx context.Context, id string) error

	ActiveMissionID(ctx context.Context) (string, error)
	SetActiveMissionID(ctx context.Context, id string) error

	ListTapTargets(ctx context.Context) ([]types.TapTarget, error)
	SaveTapTarget(ctx context.Context, t *types.TapTarget) error

	Close() error
}

// Service drives the pure engine operations against a Store: load, apply,
// log, save. An empty mission id always means the active mission.
type Service struct {
	store Store
	clock func() time.Time
	loc   *time.Location
	log   *slog.Logger
}

type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithLocation sets the zone whose midnight starts a new day.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: time.Now,
		loc:   time.Local,
		log:   observability.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Store() Store { return s.store }

// Now returns the current instant in the service's location.
func (s *Service) Now() time.Time {
	return s.clock().In(s.loc)
}

func (s *Service) logger(ctx context.Context, missionID string) *slog.Logger {
	return observability.LoggerFromContext(observability.WithMissionID(ctx, missionID), s.log)
}

func (s *Service) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id != "" {
		return id, nil
	}
	active, err := s.store.ActiveMissionID(ctx)
	if err != nil {
		return "", err
	}
	if active == "" {
		return "", ErrNoActiveMission
	}
	return active, nil
}

func (s *Service) load(ctx context.Context, id string) (types.Mission, error) {
	resolved, err := s.resolveID(ctx, id)
	if err != nil {
		return types.Mission{}, err
	}
	m, err := s.store.GetMission(ctx, resolved)
	if err != nil {
		return types.Mission{}, err
	}
	if m == nil {
		// Allow unambiguous id prefixes, as printed by `focus list`.
		all, err := s.store.ListMissions(ctx)
		if err != nil {
			return types.Mission{}, err
		}
		var match *types.Mission
		for i := range all {
			if strings.HasPrefix(all[i].ID, resolved) {
				if match != nil {
					return types.Mission{}, fmt.Errorf("mission id %q is ambiguous", resolved)
				}
				match = &all[i]
			}
		}
		if match == nil {
			return types.Mission{}, fmt.Errorf("%w: %s", ErrMissionNotFound, resolved)
		}
		m = match
	}
	return *m, nil
}

func (s *Service) save(ctx context.Context, m *types.Mission) error {
	if err := s.store.SaveMission(ctx, m); err != nil {
		s.logger(ctx, m.ID).Error("save mission failed", "err", err)
		return fmt.Errorf("save mission %s: %w", m.ID, err)
	}
	return nil
}

// CreateMission validates in, stores the new mission, and makes it active.
func (s *Service) CreateMission(ctx context.Context, in CreateMissionInput) (*types.Mission, error) {
	m, err := NewMission(in, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &m); err != nil {
		return nil, err
	}
	if err := s.store.SetActiveMissionID(ctx, m.ID); err != nil {
		return nil, err
	}
	s.logger(ctx, m.ID).Info("mission created", "name", m.Config.Name, "start", m.Config.StartDate.String())
	return &m, nil
}

// CreateFromTemplate instantiates a built-in preset starting on start (zero means today).
func (s *Service) CreateFromTemplate(ctx context.Context, code string, start types.Date) (*types.Mission, error) {
	def, err := TemplateByCode(code)
	if err != nil {
		return nil, err
	}
	in := def.Input
	in.StartDate = start
	return s.CreateMission(ctx, in)
}

func (s *Service) Missions(ctx context.Context) ([]types.Mission, error) {
	return s.store.ListMissions(ctx)
}

func (s *Service) Mission(ctx context.Context, id string) (*types.Mission, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ActiveMission returns ErrNoActiveMission when no mission is selected.
func (s *Service) ActiveMission(ctx context.Context) (*types.Mission, error) {
	return s.Mission(ctx, "")
}

func (s *Service) SetActive(ctx context.Context, id string) (*types.Mission, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetActiveMissionID(ctx, m.ID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) DeleteMission(ctx context.Context, id string) error {
	m, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	active, err := s.store.ActiveMissionID(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMission(ctx, m.ID); err != nil {
		return err
	}
	if active == m.ID {
		if err := s.store.SetActiveMissionID(ctx, ""); err != nil {
			return err
		}
	}
	s.logger(ctx, m.ID).Info("mission deleted")
	return nil
}

// State loads the whole app state.
func (s *Service) State(ctx context.Context) (types.AppState, error) {
	state := types.AppState{
		Missions:   map[string]types.Mission{},
		TapTargets: map[string]types.TapTarget{},
	}
	missions, err := s.store.ListMissions(ctx)
	if err != nil {
		return state, err
	}
	for _, m := range missions {
		state.Missions[m.ID] = m
	}
	taps, err := s.store.ListTapTargets(ctx)
	if err != nil {
		return state, err
	}
	for _, t := range taps {
		state.TapTargets[t.ID] = t
	}
	active, err := s.store.ActiveMissionID(ctx)
	if err != nil {
		return state, err
	}
	state.ActiveMissionID = active
	return state, nil
}

func samePending(a, b *types.Breach) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *Service) reconcile(ctx context.Context, m types.Mission) ReconcileResult {
	res := Reconcile(m, s.Now())
	log := s.logger(ctx, m.ID)
	for _, d := range res.RestDays {
		log.Debug("rest day recorded", "date", d.String())
	}
	if res.Pending != nil {
		if res.Pending.MercyApplied {
			log.Info("mercy applied", "date", res.Pending.Date.String(), "buffer_left", res.Mission.Config.BufferDays)
		} else {
			log.Info("breach pending", "date", res.Pending.Date.String())
		}
	}
	if res.RolledOver {
		log.Info("day rolled over", "score_date", res.Mission.ScoreDate.String(), "tasks", len(res.Mission.Tasks))
	}
	return res
}

func reconcileChanged(before types.Mission, res ReconcileResult) bool {
	if res.RolledOver || len(res.RestDays) > 0 {
		return true
	}
	if res.Pending != nil && res.Pending.MercyApplied {
		return true
	}
	return !samePending(before.Pending, res.Mission.Pending)
}

// Reconcile runs one reconciliation pass and saves the result when it changed anything.
func (s *Service) Reconcile(ctx context.Context, id string) (*ReconcileResult, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res := s.reconcile(ctx, m)
	if reconcileChanged(m, res) {
		if err := s.save(ctx, &res.Mission); err != nil {
			return nil, err
		}
	}
	return &res, nil
}

func (s *Service) ReconcileActive(ctx context.Context) (*ReconcileResult, error) {
	return s.Reconcile(ctx, "")
}

// ResolveTaskRef maps a 1-based list position, a task id, or an unambiguous
// id prefix to a task id.
func ResolveTaskRef(m types.Mission, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(m.Tasks) {
			return m.Tasks[n-1].ID, true
		}
		return "", false
	}
	found := ""
	for _, t := range m.Tasks {
		if t.ID == ref {
			return t.ID, true
		}
		if ref != "" && strings.HasPrefix(t.ID, ref) {
			if found != "" {
				return "", false
			}
			found = t.ID
		}
	}
	return found, found != ""
}

// CompleteTask reconciles first, so a new day or a fresh breach is taken into
// account before the completion is applied.
func (s *Service) CompleteTask(ctx context.Context, id, taskRef string, points int) (*CompleteResult, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := s.reconcile(ctx, m)
	changed := reconcileChanged(m, rec)

	taskID, ok := ResolveTaskRef(rec.Mission, taskRef)
	if !ok {
		taskID = taskRef
	}
	updated, res := CompleteTask(rec.Mission, taskID, points, s.Now())
	if res.Applied {
		changed = true
		log := s.logger(ctx, m.ID)
		log.Info("task completed", "task", res.Task.Title, "points", points, "score", res.ScoreAfter)
		if res.TargetReached {
			log.Info("daily target reached", "date", updated.ScoreDate.String())
		}
	}
	if changed {
		if err := s.save(ctx, &updated); err != nil {
			return nil, err
		}
	}
	return &res, nil
}

func (s *Service) AddTask(ctx context.Context, id string, in AddTaskInput) (*types.Task, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, task, err := AddTask(m, in)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	s.logger(ctx, m.ID).Info("task added", "task", task.Title, "habit", !in.Once)
	return &task, nil
}

// AcceptPenalty marks the pending breach as failed. It returns the resolved
// breach, or nil when nothing was pending.
func (s *Service) AcceptPenalty(ctx context.Context, id string) (*types.Breach, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Blocked() {
		return nil, nil
	}
	breach := *m.Pending
	updated := AcceptPenalty(m, breach.Date)
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	s.logger(ctx, m.ID).Info("penalty accepted", "date", breach.Date.String(), "penalty", string(m.Config.PenaltyType))
	return &breach, nil
}

// Restart resets the mission when a breach is pending. It reports whether it did anything.
func (s *Service) Restart(ctx context.Context, id string) (bool, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return false, err
	}
	if !m.Blocked() {
		return false, nil
	}
	updated := Restart(m, s.Now())
	if err := s.save(ctx, &updated); err != nil {
		return false, err
	}
	s.logger(ctx, m.ID).Info("mission restarted", "start", updated.Config.StartDate.String(), "buffer_left", updated.Config.BufferDays)
	return true, nil
}

func (s *Service) AcknowledgeMercy(ctx context.Context, id string) (bool, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return false, err
	}
	if m.Pending == nil || !m.Pending.MercyApplied {
		return false, nil
	}
	updated := AcknowledgeMercy(m)
	if err := s.save(ctx, &updated); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) UpdateConfig(ctx context.Context, id string, p ConfigPatch) (*types.Mission, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := UpdateConfig(m, p)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	s.logger(ctx, m.ID).Info("mission config updated")
	return &updated, nil
}

// Summary reconciles nothing; it reports the stored state as is.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	state, err := s.State(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(state, s.Now()), nil
}
