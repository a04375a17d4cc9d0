package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI mission board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if flagMission != "" {
				if _, err := svc.SetActive(ctx, flagMission); err != nil {
					return err
				}
			}
			return tui.RunBoard(ctx, svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
