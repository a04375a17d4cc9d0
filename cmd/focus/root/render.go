package root

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/types"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func penaltyText(cfg types.MissionConfig) string {
	if cfg.PenaltyDetail == "" {
		return string(cfg.PenaltyType)
	}
	return fmt.Sprintf("%s (%s)", cfg.PenaltyType, cfg.PenaltyDetail)
}

func countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%dh %02dm", int(d.Hours()), int(d.Minutes())%60)
}

// printBreach renders the notification a pending breach requires.
func printBreach(w io.Writer, m types.Mission) {
	if m.Pending == nil {
		return
	}
	b := *m.Pending
	if b.MercyApplied {
		body := strings.Join([]string{
			ui.Good.Render(ui.IconShield + " Mercy applied"),
			fmt.Sprintf("You missed %s. A buffer day covered it.", b.Date),
			fmt.Sprintf("Buffer days left: %d", m.Config.BufferDays),
			ui.Muted.Render("Run `focus ack` to dismiss."),
		}, "\n")
		fmt.Fprintln(w, ui.MercyModal.Render(body))
		return
	}
	body := strings.Join([]string{
		ui.Bad.Render(ui.IconSkull + " Mission breached"),
		fmt.Sprintf("You missed %s and have no buffer days left.", b.Date),
		ui.LabelValue("Penalty", penaltyText(m.Config)),
		ui.Muted.Render("Run `focus accept` to take the penalty or `focus restart` to start over."),
		ui.Muted.Render("Task input is locked until you choose."),
	}, "\n")
	fmt.Fprintln(w, ui.Modal.Render(body))
}

func printMission(w io.Writer, m types.Mission, now time.Time) {
	p := engine.Progress(m, now)
	cfg := m.Config

	fmt.Fprintln(w, ui.Heading(ui.IconTarget, cfg.Name)+" "+ui.Muted.Render(shortID(m.ID)))
	switch {
	case !p.Started:
		fmt.Fprintln(w, ui.LabelValue("Starts", cfg.StartDate))
	case p.Finished:
		fmt.Fprintln(w, ui.Gold.Render(ui.IconTrophy+" Mission complete"))
	default:
		fmt.Fprintln(w, ui.LabelValue("Day", fmt.Sprintf("%d / %d", p.DayNumber, p.TotalDays)))
		fmt.Fprintln(w, ui.LabelValue("Time left today", ui.IconClock+" "+countdown(p.TimeLeftToday)))
	}
	if p.Started && !p.Finished && !p.ScheduledToday {
		fmt.Fprintln(w, ui.Muted.Render(ui.IconRest+" Rest day. Nothing is due."))
	}
	fmt.Fprintln(w, ui.LabelValue("Score", fmt.Sprintf("%s %d/%d", ui.ScoreBar(m.TodayScore, cfg.DailyPointTarget, 20), m.TodayScore, cfg.DailyPointTarget)))
	fmt.Fprintln(w, ui.LabelValue("Buffer days", cfg.BufferDays))
	fmt.Fprintln(w, ui.LabelValue("Penalty", penaltyText(cfg)))
	fmt.Fprintln(w, "")

	printBreach(w, m)

	fmt.Fprintln(w, ui.H2.Render(ui.IconScroll+" Today"))
	if len(m.Tasks) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("(no tasks)"))
		return
	}
	for i, t := range m.Tasks {
		fmt.Fprintf(w, "%2d. %s %s %s %s\n", i+1, ui.TaskCheckbox(t.Status), t.Title, ui.PriorityText(t.Priority), ui.Muted.Render(shortID(t.ID)))
	}
}
