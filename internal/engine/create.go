package engine

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrboora04/focuspoint/internal/types"
)

const MaxDurationDays = 365

type CreateMissionInput struct {
	Name              string
	DurationDays      int
	DailyPointTarget  int
	StartDate         types.Date // zero means today
	DailyHabits       []string
	PenaltyType       types.PenaltyType
	PenaltyDetail     string
	BufferDays        int
	Frequency         types.Frequency
	ScheduledWeekdays []int
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "title is required"}
	}
	return t, nil
}

func normalizeHabits(habits []string) []string {
	var out []string
	for _, h := range habits {
		h = strings.TrimSpace(h)
		if h == "" || slices.Contains(out, h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// NewMission validates in and builds a fresh mission. The score date is left
// unset so the first Reconcile performs the initial rollover.
func NewMission(in CreateMissionInput, now time.Time) (types.Mission, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return types.Mission{}, ValidationError{Field: "name", Reason: "name is required"}
	}
	if in.DurationDays <= 0 || in.DurationDays > MaxDurationDays {
		return types.Mission{}, ValidationError{Field: "duration", Reason: "must be between 1 and 365 days"}
	}
	if in.DailyPointTarget <= 0 {
		return types.Mission{}, ValidationError{Field: "target", Reason: "daily point target must be positive"}
	}
	if in.BufferDays < 0 {
		return types.Mission{}, ValidationError{Field: "buffer", Reason: "buffer days cannot be negative"}
	}

	penalty := in.PenaltyType
	if penalty == "" {
		penalty = types.PenaltyRestart
	}
	if !penalty.IsValid() {
		return types.Mission{}, ValidationError{Field: "penalty", Reason: "unknown penalty type " + string(penalty)}
	}

	freq := in.Frequency
	if freq == "" {
		freq = types.FrequencyDaily
	}
	if !freq.IsValid() {
		return types.Mission{}, ValidationError{Field: "frequency", Reason: "unknown frequency " + string(freq)}
	}
	var weekdays []int
	if freq == types.FrequencySelected {
		for _, wd := range in.ScheduledWeekdays {
			if wd < 0 || wd > 6 {
				return types.Mission{}, ValidationError{Field: "days", Reason: "weekdays must be between 0 (Sunday) and 6 (Saturday)"}
			}
			if !slices.Contains(weekdays, wd) {
				weekdays = append(weekdays, wd)
			}
		}
		if len(weekdays) == 0 {
			return types.Mission{}, ValidationError{Field: "days", Reason: "selected frequency needs at least one weekday"}
		}
		slices.Sort(weekdays)
	}

	start := in.StartDate
	if start.IsZero() {
		start = types.DateOf(now)
	}

	m := types.Mission{
		ID: uuid.NewString(),
		Config: types.MissionConfig{
			Name:              name,
			DurationDays:      in.DurationDays,
			DailyPointTarget:  in.DailyPointTarget,
			StartDate:         start,
			DailyHabits:       normalizeHabits(in.DailyHabits),
			PenaltyType:       penalty,
			PenaltyDetail:     strings.TrimSpace(in.PenaltyDetail),
			BufferDays:        in.BufferDays,
			Frequency:         freq,
			ScheduledWeekdays: weekdays,
		},
		History:   map[types.Date]types.DayStatus{},
		DailyLog:  map[types.Date][]types.CompletionRecord{},
		CreatedAt: now,
	}
	if err := m.Config.Validate(); err != nil {
		return types.Mission{}, ValidationError{Reason: err.Error()}
	}
	return m, nil
}

type AddTaskInput struct {
	Title    string
	Priority types.Priority

	// Once keeps the task off the daily habit list.
	Once bool
}

// AddTask puts a pending task at the top of today's list. Unless Once is
// set the title also becomes a daily habit for future rollovers.
func AddTask(m types.Mission, in AddTaskInput) (types.Mission, types.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return m, types.Task{}, err
	}
	prio := in.Priority
	if prio == "" {
		prio = types.PriorityHigh
	}
	if !prio.IsValid() {
		return m, types.Task{}, ValidationError{Field: "priority", Reason: "unknown priority " + string(prio)}
	}

	task := types.Task{ID: newTaskID(), Title: title, Priority: prio, Status: types.TaskPending}
	out := m.Clone()
	out.Tasks = append([]types.Task{task}, out.Tasks...)
	if !in.Once && !slices.Contains(out.Config.DailyHabits, title) {
		out.Config.DailyHabits = append(out.Config.DailyHabits, title)
	}
	return out, task, nil
}
