package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/ui"
)

func newAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept",
		Short: "Accept the penalty for a missed day",
		Long:  "Marks the breached day as failed and unlocks the mission. The penalty itself is up to you.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Surface any breach found since the last run first.
			if _, err := svc.Reconcile(ctx, flagMission); err != nil {
				return err
			}
			m, err := svc.Mission(ctx, flagMission)
			if err != nil {
				return err
			}
			b, err := svc.AcceptPenalty(ctx, m.ID)
			if err != nil {
				return err
			}
			if b == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No breach is pending."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render(ui.IconSkull+" Penalty accepted"), b.Date, ui.Muted.Render("(marked failed)"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Penalty", penaltyText(m.Config)))
			return nil
		},
	}

	return cmd
}
