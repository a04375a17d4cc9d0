package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/ui"
)

func newAckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ack",
		Short: "Dismiss a mercy notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ok, err := svc.AcknowledgeMercy(ctx, flagMission)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to acknowledge."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconShield+" Acknowledged. Back to work."))
			return nil
		},
	}
	return cmd
}
