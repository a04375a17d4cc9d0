package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tues": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thur": 4, "thurs": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// ParseWeekdays parses a comma separated list such as "mon,tue,3" or the
// shorthands "weekdays" and "weekends". The result is sorted and deduplicated.
func ParseWeekdays(input string) ([]int, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return nil, nil
	case "weekdays":
		return []int{1, 2, 3, 4, 5}, nil
	case "weekends":
		return []int{0, 6}, nil
	}

	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, ok := weekdayNames[part]; ok {
			seen[n] = true
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday: %q", part)
		}
		seen[n] = true
	}

	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

// IsScheduled reports whether the mission's habits are expected on d.
// Daily missions are scheduled every day; the weekday set is ignored.
func IsScheduled(cfg types.MissionConfig, d types.Date) bool {
	if cfg.Frequency != types.FrequencySelected {
		return true
	}
	wd := int(d.Weekday())
	for _, s := range cfg.ScheduledWeekdays {
		if s == wd {
			return true
		}
	}
	return false
}

// NextScheduledDate returns the first scheduled date strictly after d,
// or the zero Date when no weekday is scheduled at all.
func NextScheduledDate(cfg types.MissionConfig, d types.Date) types.Date {
	for i := 1; i <= 7; i++ {
		next := d.AddDays(i)
		if IsScheduled(cfg, next) {
			return next
		}
	}
	return types.Date{}
}

// MissionProgress is the header information shown for a mission.
type MissionProgress struct {
	DayNumber      int // 1-based; 0 before the mission starts
	TotalDays      int
	DaysRemaining  int
	Started        bool
	Finished       bool
	ScheduledToday bool
	TimeLeftToday  time.Duration
}

// Progress computes the mission's position on its calendar at now.
func Progress(m types.Mission, now time.Time) MissionProgress {
	today := types.DateOf(now)
	p := MissionProgress{
		TotalDays:      m.Config.DurationDays,
		ScheduledToday: IsScheduled(m.Config, today),
		TimeLeftToday:  today.AddDays(1).Midnight(now.Location()).Sub(now),
	}

	start := m.Config.StartDate
	if today.Before(start) {
		p.DaysRemaining = m.Config.DurationDays
		return p
	}
	p.Started = true
	p.DayNumber = today.DaysSince(start) + 1
	if p.DayNumber > m.Config.DurationDays {
		p.Finished = true
		return p
	}
	p.DaysRemaining = m.Config.DurationDays - p.DayNumber
	return p
}
