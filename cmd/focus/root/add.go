package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/types"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newAddCmd() *cobra.Command {
	var priority string
	var once bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to today (and to the daily habits unless --once)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			p, err := types.ParsePriority(priority)
			if err != nil {
				return err
			}
			t, err := svc.AddTask(ctx, flagMission, engine.AddTaskInput{Title: args[0], Priority: p, Once: once})
			if err != nil {
				return err
			}
			kind := ui.IconLoop + " habit"
			if once {
				kind = "today only"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), t.Title, ui.PriorityText(t.Priority), ui.Muted.Render("("+kind+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "high", "Priority (high|medium|low)")
	cmd.Flags().BoolVar(&once, "once", false, "Only today; don't add it to the daily habits")

	return cmd
}
