package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrboora04/focuspoint/internal/types"
)

// Focus theme (CLI + TUI).

const (
	IconTarget  = "🎯"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconFire    = "🔥"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconShield  = "🛡️"
	IconLoop    = "🔁"
	IconScroll  = "📜"
	IconRest    = "💤"
	IconSkull   = "💀"
	IconTap     = "👆"
	IconClock   = "⏳"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
	Modal       = lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(cBad).Padding(1, 2)
	MercyModal  = lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(cGood).Padding(1, 2)

	BadgeTarget = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("TARGET HIT")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// DayStatusText renders a history status; an empty status is "open".
func DayStatusText(status types.DayStatus) string {
	switch status {
	case types.DayCompleted:
		return Good.Render("completed")
	case types.DayFailed:
		return Bad.Render("failed")
	case types.DaySkipped:
		return Warn.Render("skipped")
	case types.DayRest:
		return Muted.Render("rest")
	default:
		return Dim.Render("open")
	}
}

// DayCell is the one-character calendar cell for a status.
func DayCell(status types.DayStatus) string {
	switch status {
	case types.DayCompleted:
		return Good.Render("■")
	case types.DayFailed:
		return Bad.Render("✗")
	case types.DaySkipped:
		return Warn.Render("◐")
	case types.DayRest:
		return Muted.Render("·")
	default:
		return Dim.Render("□")
	}
}

func PriorityText(p types.Priority) string {
	switch p {
	case types.PriorityHigh:
		return Bad.Render("high")
	case types.PriorityMedium:
		return Warn.Render("med")
	case types.PriorityLow:
		return Muted.Render("low")
	default:
		return Muted.Render(string(p))
	}
}

func TaskCheckbox(s types.TaskStatus) string {
	if s == types.TaskCompleted {
		return Good.Render("[x]")
	}
	return "[ ]"
}

// ScoreBar draws score/target as a fixed-width bar.
func ScoreBar(score, target, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if target > 0 {
		filled = (score * width) / target
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if target > 0 && score >= target {
		return Good.Render(bar)
	}
	return Key.Render(bar)
}
