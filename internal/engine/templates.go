package engine

import (
	"fmt"
	"strings"

	"github.com/mrboora04/focuspoint/internal/types"
)

// TemplateDef is a built-in mission preset.
type TemplateDef struct {
	Code        string
	Description string
	Input       CreateMissionInput
}

func builtinTemplates() []TemplateDef {
	return []TemplateDef{
		{
			Code:        "monk-mode",
			Description: "30 days of deep focus, no distractions",
			Input: CreateMissionInput{
				Name:             "Monk Mode",
				DurationDays:     30,
				DailyPointTarget: 50,
				DailyHabits:      []string{"Deep work block", "No social media", "Read 20 pages"},
				PenaltyType:      types.PenaltyRestart,
				BufferDays:       2,
				Frequency:        types.FrequencyDaily,
			},
		},
		{
			Code:        "75-hard",
			Description: "75 days, two workouts, no excuses",
			Input: CreateMissionInput{
				Name:             "75 Hard",
				DurationDays:     75,
				DailyPointTarget: 50,
				DailyHabits:      []string{"Workout 1", "Workout 2 (outdoors)", "Drink 4L water", "Read 10 pages", "Progress photo"},
				PenaltyType:      types.PenaltyRestart,
				BufferDays:       0,
				Frequency:        types.FrequencyDaily,
			},
		},
		{
			Code:        "weekday-deep-work",
			Description: "Eight weeks of focused weekdays, weekends off",
			Input: CreateMissionInput{
				Name:              "Weekday Deep Work",
				DurationDays:      56,
				DailyPointTarget:  30,
				DailyHabits:       []string{"Plan the day", "Two deep work blocks"},
				PenaltyType:       types.PenaltyFine,
				PenaltyDetail:     "Donate $10",
				BufferDays:        3,
				Frequency:         types.FrequencySelected,
				ScheduledWeekdays: []int{1, 2, 3, 4, 5},
			},
		},
	}
}

// Templates returns the built-in presets in display order.
func Templates() []TemplateDef {
	return builtinTemplates()
}

func normalizeTemplateCode(code string) (string, error) {
	c := strings.TrimSpace(strings.ToLower(code))
	if c == "" {
		return "", fmt.Errorf("template code is required")
	}
	return c, nil
}

// TemplateByCode looks up a preset by its code.
func TemplateByCode(code string) (*TemplateDef, error) {
	c, err := normalizeTemplateCode(code)
	if err != nil {
		return nil, err
	}
	for _, def := range builtinTemplates() {
		if def.Code == c {
			return &def, nil
		}
	}
	return nil, fmt.Errorf("unknown template: %s", c)
}
