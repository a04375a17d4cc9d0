package root

import (
	"context"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Reconcile the mission and show today's tasks",
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
			printMission(cmd.OutOrStdout(), res.Mission, svc.Now())
			return nil
		},
	}

	return cmd
}
