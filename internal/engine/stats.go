package engine

import (
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

// Streak counts consecutive completed scheduled days.
type Streak struct {
	Current int
	Best    int
}

// Streaks walks the mission calendar up to today. Rest and unscheduled days
// neither break nor extend a streak, and today only counts once completed.
func Streaks(m types.Mission, now time.Time) Streak {
	today := types.DateOf(now)
	var s Streak
	for d := m.Config.StartDate; !d.After(today); d = d.AddDays(1) {
		status, ok := m.History[d]
		switch {
		case status == types.DayCompleted:
			s.Current++
			if s.Current > s.Best {
				s.Best = s.Current
			}
		case status == types.DayRest, !ok && !IsScheduled(m.Config, d), !ok && d == today:
			// neutral
		default:
			s.Current = 0
		}
	}
	return s
}

// CountStatus returns how many history entries have status s.
func CountStatus(m types.Mission, s types.DayStatus) int {
	n := 0
	for _, v := range m.History {
		if v == s {
			n++
		}
	}
	return n
}

// TotalPoints sums every logged completion of the mission.
func TotalPoints(m types.Mission) int {
	total := 0
	for _, recs := range m.DailyLog {
		for _, r := range recs {
			total += r.Points
		}
	}
	return total
}

// Summary is the dashboard view over every mission.
type Summary struct {
	Missions       int
	DueToday       int
	TotalPoints    int
	TodayPoints    int
	CompletedDays  int // active mission only
	CurrentStreak  int // active mission only
	BestStreak     int // best over all missions
	OpenBreaches   int
	TapTargets     int
	TapTargetsDone int
}

func Summarize(state types.AppState, now time.Time) Summary {
	today := types.DateOf(now)
	var s Summary
	for id, m := range state.Missions {
		s.Missions++
		if IsScheduled(m.Config, today) && !today.Before(m.Config.StartDate) {
			s.DueToday++
		}
		s.TotalPoints += TotalPoints(m)
		for _, r := range m.DailyLog[today] {
			s.TodayPoints += r.Points
		}
		if m.Blocked() {
			s.OpenBreaches++
		}

		st := Streaks(m, now)
		if st.Best > s.BestStreak {
			s.BestStreak = st.Best
		}
		if id == state.ActiveMissionID {
			s.CompletedDays = CountStatus(m, types.DayCompleted)
			s.CurrentStreak = st.Current
		}
	}
	for _, t := range state.TapTargets {
		s.TapTargets++
		if t.Done() {
			s.TapTargetsDone++
		}
	}
	return s
}
