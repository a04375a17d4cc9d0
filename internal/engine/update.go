package engine

import (
	"slices"
	"strings"

	"github.com/mrboora04/focuspoint/internal/types"
)

// ConfigPatch lists the explicit edits a mission accepts after creation.
// Nil fields are left unchanged. The schedule, start date, and buffer are not editable.
type ConfigPatch struct {
	Name             *string
	DailyPointTarget *int
	PenaltyDetail    *string
	AddHabits        []string
	RemoveHabits     []string
}

// UpdateConfig applies p to a copy of m.
// Edits take effect at the next rollover; today's task list is not rebuilt.
func UpdateConfig(m types.Mission, p ConfigPatch) (types.Mission, error) {
	out := m.Clone()

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return m, ValidationError{Field: "name", Reason: "name is required"}
		}
		out.Config.Name = name
	}
	if p.DailyPointTarget != nil {
		if *p.DailyPointTarget <= 0 {
			return m, ValidationError{Field: "target", Reason: "daily point target must be positive"}
		}
		out.Config.DailyPointTarget = *p.DailyPointTarget
	}
	if p.PenaltyDetail != nil {
		out.Config.PenaltyDetail = strings.TrimSpace(*p.PenaltyDetail)
	}
	if len(p.RemoveHabits) > 0 {
		out.Config.DailyHabits = slices.DeleteFunc(out.Config.DailyHabits, func(h string) bool {
			return slices.Contains(p.RemoveHabits, h)
		})
	}
	if len(p.AddHabits) > 0 {
		out.Config.DailyHabits = normalizeHabits(append(out.Config.DailyHabits, p.AddHabits...))
	}
	return out, nil
}
