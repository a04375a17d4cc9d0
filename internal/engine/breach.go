package engine

import (
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

// AcceptPenalty finalizes the pending breach on date as failed and lets the
// mission continue. It is a no-op unless an unresolved breach for date exists.
func AcceptPenalty(m types.Mission, date types.Date) types.Mission {
	if !m.Blocked() || m.Pending.Date != date {
		return m
	}
	out := m.Clone()
	if _, ok := out.History[date]; !ok {
		out.History[date] = types.DayFailed
	}
	out.Pending = nil
	return out
}

// Restart wipes the mission's progress and starts it again today.
// Habits, penalty terms, and the already reduced buffer count are kept.
// The score date is cleared so the next reconcile repopulates today's habits.
func Restart(m types.Mission, now time.Time) types.Mission {
	if !m.Blocked() {
		return m
	}
	out := m.Clone()
	out.Config.StartDate = types.DateOf(now)
	out.Tasks = nil
	out.History = map[types.Date]types.DayStatus{}
	out.DailyLog = map[types.Date][]types.CompletionRecord{}
	out.TodayScore = 0
	out.ScoreDate = types.Date{}
	out.Pending = nil
	return out
}

// AcknowledgeMercy dismisses a mercy notification. Unresolved breaches are left alone.
func AcknowledgeMercy(m types.Mission) types.Mission {
	if m.Pending == nil || !m.Pending.MercyApplied {
		return m
	}
	out := m.Clone()
	out.Pending = nil
	return out
}
