package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/types"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newNewCmd() *cobra.Command {
	var (
		days          int
		target        int
		start         string
		habits        []string
		penalty       string
		penaltyDetail string
		buffer        int
		weekdays      string
		template      string
	)

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a mission and make it active",
		Example: `  focus new "Deep Work" --days 30 --target 50 --habit "Read" --habit "Run" --buffer 2
  focus new "Gym" --days 60 --target 20 --weekdays mon,wed,fri --penalty fine --penalty-detail "Donate $20"
  focus new --template monk-mode`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("only one name is allowed (quote it)")
			}
			if len(args) == 0 && template == "" {
				return errors.New("name is required unless --template is given")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var startDate types.Date
			if start != "" {
				if startDate, err = types.ParseDate(start); err != nil {
					return err
				}
			}

			var m *types.Mission
			if template != "" {
				m, err = svc.CreateFromTemplate(ctx, template, startDate)
				if err != nil {
					return err
				}
				if len(args) == 1 {
					name := args[0]
					if m, err = svc.UpdateConfig(ctx, m.ID, engine.ConfigPatch{Name: &name}); err != nil {
						return err
					}
				}
			} else {
				in := engine.CreateMissionInput{
					Name:             args[0],
					DurationDays:     days,
					DailyPointTarget: target,
					StartDate:        startDate,
					DailyHabits:      habits,
					PenaltyDetail:    penaltyDetail,
					BufferDays:       buffer,
				}
				if in.PenaltyType, err = types.ParsePenaltyType(penalty); err != nil {
					return err
				}
				if strings.TrimSpace(weekdays) != "" {
					in.Frequency = types.FrequencySelected
					if in.ScheduledWeekdays, err = engine.ParseWeekdays(weekdays); err != nil {
						return err
					}
				}
				m, err = svc.CreateMission(ctx, in)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Created"), m.Config.Name, ui.Muted.Render(shortID(m.ID)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Runs", fmt.Sprintf("%s for %d days", m.Config.StartDate, m.Config.DurationDays)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Daily target", m.Config.DailyPointTarget))
			if len(m.Config.DailyHabits) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Habits", strings.Join(m.Config.DailyHabits, ", ")))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Run `focus status` to see today's tasks."))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 30, "Mission length in days (1-365)")
	cmd.Flags().IntVarP(&target, "target", "t", 50, "Points needed each day")
	cmd.Flags().StringVar(&start, "start", "", "Start date YYYY-MM-DD (default today)")
	cmd.Flags().StringArrayVarP(&habits, "habit", "H", nil, "Daily habit (repeatable)")
	cmd.Flags().StringVarP(&penalty, "penalty", "p", "restart", "Penalty type (restart|fine|physical|social)")
	cmd.Flags().StringVar(&penaltyDetail, "penalty-detail", "", "What the penalty is, e.g. \"Donate $20\"")
	cmd.Flags().IntVarP(&buffer, "buffer", "b", 0, "Buffer days that absorb a missed day")
	cmd.Flags().StringVarP(&weekdays, "weekdays", "w", "", "Only these weekdays, e.g. mon,wed,fri or weekdays")
	cmd.Flags().StringVar(&template, "template", "", "Create from a built-in template (see `focus templates`)")

	return cmd
}
