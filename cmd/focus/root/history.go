package root

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/types"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var showLog bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the mission calendar and daily log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Reconcile(ctx, flagMission)
			if err != nil {
				return err
			}
			m := res.Mission
			w := cmd.OutOrStdout()
			today := types.DateOf(svc.Now())

			fmt.Fprintln(w, ui.Heading(ui.IconScroll, m.Config.Name+" history"))
			fmt.Fprintln(w, ui.Muted.Render("■ completed  ✗ failed  ◐ skipped  · rest  □ open"))
			printCalendar(w, m, today)

			st := engine.Streaks(m, svc.Now())
			fmt.Fprintln(w, "")
			fmt.Fprintln(w, ui.LabelValue("Completed", engine.CountStatus(m, types.DayCompleted)))
			fmt.Fprintln(w, ui.LabelValue("Failed", engine.CountStatus(m, types.DayFailed)))
			fmt.Fprintln(w, ui.LabelValue("Skipped (buffer)", engine.CountStatus(m, types.DaySkipped)))
			fmt.Fprintln(w, ui.LabelValue("Streak", fmt.Sprintf("%d (best %d)", st.Current, st.Best)))

			if showLog {
				printDailyLog(w, m)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showLog, "log", "l", false, "Also print every logged completion")

	return cmd
}

// printCalendar prints one row per week from the start date up to today or
// the last mission day, whichever comes first.
func printCalendar(w io.Writer, m types.Mission, today types.Date) {
	start := m.Config.StartDate
	if today.Before(start) {
		fmt.Fprintln(w, ui.Muted.Render("(mission has not started)"))
		return
	}
	end := start.AddDays(m.Config.DurationDays - 1)
	if today.Before(end) {
		end = today
	}

	fmt.Fprintln(w, "           Su Mo Tu We Th Fr Sa")
	// Align the first row on Sunday.
	rowStart := start.AddDays(-int(start.Weekday()))
	for d := rowStart; !d.After(end); d = d.AddDays(7) {
		var cells []string
		for i := 0; i < 7; i++ {
			day := d.AddDays(i)
			switch {
			case day.Before(start) || day.After(end):
				cells = append(cells, "  ")
			default:
				cells = append(cells, ui.DayCell(m.History[day])+" ")
			}
		}
		fmt.Fprintf(w, "%s %s\n", d.String(), strings.Join(cells, " "))
	}
}

func printDailyLog(w io.Writer, m types.Mission) {
	dates := make([]types.Date, 0, len(m.DailyLog))
	for d := range m.DailyLog {
		dates = append(dates, d)
	}
	sortDates(dates)

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, ui.H2.Render("Daily log"))
	if len(dates) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("(nothing logged yet)"))
		return
	}
	for _, d := range dates {
		total := 0
		for _, r := range m.DailyLog[d] {
			total += r.Points
		}
		fmt.Fprintf(w, "%s %s %s\n", ui.Key.Render(d.String()), ui.DayStatusText(m.History[d]), ui.Muted.Render(fmt.Sprintf("(%d pts)", total)))
		for _, r := range m.DailyLog[d] {
			fmt.Fprintf(w, "  %s %-28s %+4d %s\n", r.Timestamp.Format(time.Kitchen), r.Title, r.Points, ui.PriorityText(r.Priority))
		}
	}
}

func sortDates(dates []types.Date) {
	slices.SortFunc(dates, func(a, b types.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
}
