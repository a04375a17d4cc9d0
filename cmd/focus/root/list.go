package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state, err := svc.State(ctx)
			if err != nil {
				return err
			}
			missions, err := svc.Missions(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(missions) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("No missions yet. Create one with `focus new`."))
				return nil
			}
			now := svc.Now()
			for _, m := range missions {
				marker := "  "
				if m.ID == state.ActiveMissionID {
					marker = ui.Gold.Render("* ")
				}
				p := engine.Progress(m, now)
				day := fmt.Sprintf("day %d/%d", p.DayNumber, p.TotalDays)
				switch {
				case !p.Started:
					day = "starts " + m.Config.StartDate.String()
				case p.Finished:
					day = "finished"
				}
				line := fmt.Sprintf("%s%s %s %s", marker, ui.Muted.Render(shortID(m.ID)), m.Config.Name, ui.Muted.Render("("+day+")"))
				if m.Blocked() {
					line += " " + ui.Bad.Render("breached")
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	return cmd
}
