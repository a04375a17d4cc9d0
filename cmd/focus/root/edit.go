package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newEditCmd() *cobra.Command {
	var (
		name          string
		target        int
		penaltyDetail string
		addHabits     []string
		removeHabits  []string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the mission name, daily target, penalty detail or habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			var p engine.ConfigPatch
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("target") {
				p.DailyPointTarget = &target
			}
			if cmd.Flags().Changed("penalty-detail") {
				p.PenaltyDetail = &penaltyDetail
			}
			p.AddHabits = addHabits
			p.RemoveHabits = removeHabits

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			m, err := svc.UpdateConfig(ctx, flagMission, p)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", ui.Good.Render(ui.IconDone+" Updated"), m.Config.Name)
			fmt.Fprintln(w, ui.LabelValue("Daily target", m.Config.DailyPointTarget))
			fmt.Fprintln(w, ui.LabelValue("Penalty", penaltyText(m.Config)))
			fmt.Fprintln(w, ui.LabelValue("Habits", strings.Join(m.Config.DailyHabits, ", ")))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New mission name")
	cmd.Flags().IntVarP(&target, "target", "t", 0, "New daily point target")
	cmd.Flags().StringVar(&penaltyDetail, "penalty-detail", "", "New penalty detail")
	cmd.Flags().StringArrayVar(&addHabits, "add-habit", nil, "Add a daily habit (repeatable)")
	cmd.Flags().StringArrayVar(&removeHabits, "remove-habit", nil, "Remove a daily habit (repeatable)")

	return cmd
}
