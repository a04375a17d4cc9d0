package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// MissionConfig holds the settings chosen when a mission is created.
type MissionConfig struct {
	Name              string      `json:"name" yaml:"name"`
	DurationDays      int         `json:"duration_days" yaml:"duration_days"`
	DailyPointTarget  int         `json:"daily_point_target" yaml:"daily_point_target"`
	StartDate         Date        `json:"start_date" yaml:"start_date"`
	DailyHabits       []string    `json:"daily_habits,omitempty" yaml:"daily_habits,omitempty"`
	PenaltyType       PenaltyType `json:"penalty_type" yaml:"penalty_type"`
	PenaltyDetail     string      `json:"penalty_detail,omitempty" yaml:"penalty_detail,omitempty"`
	BufferDays        int         `json:"buffer_days" yaml:"buffer_days"`
	Frequency         Frequency   `json:"frequency" yaml:"frequency"`
	ScheduledWeekdays []int       `json:"scheduled_weekdays,omitempty" yaml:"scheduled_weekdays,omitempty"` // 0=Sunday
}

// Validate checks the config the way mission creation requires.
func (c *MissionConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if c.DurationDays <= 0 {
		return fmt.Errorf("duration_days must be positive (got %d)", c.DurationDays)
	}
	if c.DailyPointTarget <= 0 {
		return fmt.Errorf("daily_point_target must be positive (got %d)", c.DailyPointTarget)
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	if c.BufferDays < 0 {
		return fmt.Errorf("buffer_days cannot be negative (got %d)", c.BufferDays)
	}
	if !c.PenaltyType.IsValid() {
		return fmt.Errorf("invalid penalty type: %s", c.PenaltyType)
	}
	if !c.Frequency.IsValid() {
		return fmt.Errorf("invalid frequency: %s", c.Frequency)
	}
	for _, wd := range c.ScheduledWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("scheduled weekday must be between 0 and 6 (got %d)", wd)
		}
	}
	if c.Frequency == FrequencySelected && len(c.ScheduledWeekdays) == 0 {
		return fmt.Errorf("selected frequency requires at least one scheduled weekday")
	}
	return nil
}

// Task is one entry of the current day's task list.
type Task struct {
	ID       string     `json:"id" yaml:"id"`
	Title    string     `json:"title" yaml:"title"`
	Priority Priority   `json:"priority" yaml:"priority"`
	Status   TaskStatus `json:"status" yaml:"status"`
}

// CompletionRecord is an append-only audit entry in the daily log.
type CompletionRecord struct {
	Title     string    `json:"title" yaml:"title"`
	Points    int       `json:"points" yaml:"points"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Priority  Priority  `json:"priority" yaml:"priority"`
}

// Breach is a missed scheduled day surfaced to the user.
// MercyApplied breaches were already resolved with a buffer day and only need acknowledging.
type Breach struct {
	Date         Date `json:"date" yaml:"date"`
	MercyApplied bool `json:"mercy_applied" yaml:"mercy_applied"`
}

// Mission is the aggregate the engine reads and writes.
type Mission struct {
	ID         string                      `json:"id" yaml:"id"`
	Config     MissionConfig               `json:"config" yaml:"config"`
	Tasks      []Task                      `json:"tasks" yaml:"tasks"`
	History    map[Date]DayStatus          `json:"history" yaml:"history"`
	DailyLog   map[Date][]CompletionRecord `json:"daily_log" yaml:"daily_log"`
	TodayScore int                         `json:"today_score" yaml:"today_score"`
	ScoreDate  Date                        `json:"score_date" yaml:"score_date"`
	Pending    *Breach                     `json:"pending,omitempty" yaml:"pending,omitempty"`
	CreatedAt  time.Time                   `json:"created_at" yaml:"created_at"`
}

// Clone returns a deep copy so callers can mutate without aliasing m.
// The maps of the copy are always non-nil.
func (m Mission) Clone() Mission {
	out := m
	out.Config.DailyHabits = slices.Clone(m.Config.DailyHabits)
	out.Config.ScheduledWeekdays = slices.Clone(m.Config.ScheduledWeekdays)
	out.Tasks = slices.Clone(m.Tasks)
	out.History = make(map[Date]DayStatus, len(m.History))
	for d, s := range m.History {
		out.History[d] = s
	}
	out.DailyLog = make(map[Date][]CompletionRecord, len(m.DailyLog))
	for d, recs := range m.DailyLog {
		out.DailyLog[d] = slices.Clone(recs)
	}
	if m.Pending != nil {
		p := *m.Pending
		out.Pending = &p
	}
	return out
}

// FindTask returns the index of the task with the given id, or -1.
func (m *Mission) FindTask(id string) int {
	for i := range m.Tasks {
		if m.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Blocked reports whether input is locked behind an unresolved breach.
func (m *Mission) Blocked() bool {
	return m.Pending != nil && !m.Pending.MercyApplied
}
