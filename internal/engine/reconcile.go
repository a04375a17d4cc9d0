package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrboora04/focuspoint/internal/types"
)

// newTaskID is swapped in tests that need stable identities.
var newTaskID = uuid.NewString

// ReconcileResult is the outcome of one reconciliation pass.
type ReconcileResult struct {
	Mission types.Mission

	// Pending is the oldest unresolved missed day found by this call, if any.
	// At most one is reported per call.
	Pending *types.Breach

	// RestDays lists unscheduled dates newly recorded as rest by this call.
	RestDays []types.Date

	RolledOver bool
}

// Reconcile brings m up to date with the calendar at now. "Today" is the
// calendar date of now in now's location.
//
// Two independent passes run on every call. The missed-day scan walks from
// the start date up to (not including) today and stops at the first
// scheduled date without a status; a buffer day turns it into a skipped day,
// otherwise it is reported as a breach and left unset until the caller
// accepts the penalty or restarts. The rollover pass starts a new day when
// the score date is behind today.
//
// The input mission is never modified.
func Reconcile(m types.Mission, now time.Time) ReconcileResult {
	out := m.Clone()
	today := types.DateOf(now)
	res := ReconcileResult{}

	if today.Before(out.Config.StartDate) {
		res.Mission = out
		return res
	}

	res.Pending, res.RestDays = scanMissedDays(&out, today)
	switch {
	case res.Pending != nil:
		b := *res.Pending
		out.Pending = &b
	case out.Pending != nil && !out.Pending.MercyApplied:
		// The gap was resolved outside the engine; nothing blocks input anymore.
		out.Pending = nil
	}

	res.RolledOver = rollover(&out, today)
	res.Mission = out
	return res
}

func scanMissedDays(m *types.Mission, today types.Date) (*types.Breach, []types.Date) {
	var rest []types.Date
	for d := m.Config.StartDate; d.Before(today); d = d.AddDays(1) {
		if _, ok := m.History[d]; ok {
			continue
		}
		if d == m.ScoreDate {
			continue
		}
		if !IsScheduled(m.Config, d) {
			m.History[d] = types.DayRest
			rest = append(rest, d)
			continue
		}

		if m.Config.BufferDays > 0 {
			m.History[d] = types.DaySkipped
			m.Config.BufferDays--
			return &types.Breach{Date: d, MercyApplied: true}, rest
		}
		return &types.Breach{Date: d, MercyApplied: false}, rest
	}
	return nil, rest
}

func rollover(m *types.Mission, today types.Date) bool {
	if m.ScoreDate == today {
		return false
	}

	if IsScheduled(m.Config, today) {
		tasks := make([]types.Task, 0, len(m.Config.DailyHabits)+len(m.Tasks))
		for _, habit := range m.Config.DailyHabits {
			tasks = append(tasks, types.Task{
				ID:       newTaskID(),
				Title:    habit,
				Priority: types.PriorityHigh,
				Status:   types.TaskPending,
			})
		}
		for _, t := range m.Tasks {
			if t.Status == types.TaskPending {
				tasks = append(tasks, t)
			}
		}
		m.Tasks = tasks
	}

	m.TodayScore = 0
	m.ScoreDate = today
	return true
}
