package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals, streaks and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := svc.Summary(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconSparkle, "Stats"))
			fmt.Fprintln(w, ui.LabelValue("Missions", fmt.Sprintf("%d (%d due today)", s.Missions, s.DueToday)))
			fmt.Fprintln(w, ui.LabelValue("Points today", s.TodayPoints))
			fmt.Fprintln(w, ui.LabelValue("Points all time", s.TotalPoints))
			fmt.Fprintln(w, ui.LabelValue("Completed days", s.CompletedDays))
			fmt.Fprintln(w, ui.LabelValue("Streak", fmt.Sprintf("%s %d (best %d)", ui.IconFire, s.CurrentStreak, s.BestStreak)))
			if s.OpenBreaches > 0 {
				fmt.Fprintln(w, ui.Bad.Render(fmt.Sprintf("%s %d mission(s) waiting on a breach decision", ui.IconWarn, s.OpenBreaches)))
			}
			if s.TapTargets > 0 {
				fmt.Fprintln(w, ui.LabelValue("Tap targets", fmt.Sprintf("%d/%d done", s.TapTargetsDone, s.TapTargets)))
			}

			m, err := svc.Mission(ctx, flagMission)
			if errors.Is(err, engine.ErrNoActiveMission) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "")
			fmt.Fprintln(w, ui.H2.Render(ui.IconTrophy+" Achievements · "+m.Config.Name))
			for _, a := range engine.Achievements(*m, svc.Now()) {
				if a.Earned {
					fmt.Fprintf(w, "%s %s %s\n", a.Icon, ui.Gold.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(w, "%s %s %s\n", "🔒", ui.Dim.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}
	return cmd
}
