package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/ui"
)

func newRestartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart a breached mission from today",
		Long: `Restart wipes tasks, history and the daily log and starts the mission again today.

Only allowed while a breach is pending. Remaining buffer days are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.Reconcile(ctx, flagMission); err != nil {
				return err
			}
			m, err := svc.Mission(ctx, flagMission)
			if err != nil {
				return err
			}
			ok, err := svc.Restart(ctx, m.ID)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No breach is pending; nothing to restart."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconLoop+" Restarted"), m.Config.Name)
			return nil
		},
	}

	return cmd
}
