package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/types"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newTapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tap",
		Short: "Counter goals such as \"100 push-ups\"",
	}
	cmd.AddCommand(newTapAddCmd(), newTapCountCmd(), newTapListCmd())
	return cmd
}

func newTapAddCmd() *cobra.Command {
	var target int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a tap target",
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

			t, err := svc.CreateTapTarget(ctx, args[0], target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Tap target"), t.Title, ui.Muted.Render(fmt.Sprintf("(0/%d)", t.Target)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&target, "target", "t", engine.DefaultTapTarget, "Count to reach")

	return cmd
}

func newTapCountCmd() *cobra.Command {
	var spent time.Duration

	cmd := &cobra.Command{
		Use:   "count <target> [taps]",
		Short: "Record taps (default 1)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("usage: focus tap count <target> [taps]")
			}
			if len(args) == 2 {
				if _, err := strconv.Atoi(args[1]); err != nil {
					return errors.New("taps must be an integer")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			taps := 1
			if len(args) == 2 {
				taps, _ = strconv.Atoi(args[1])
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.RecordTaps(ctx, args[0], taps, spent)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tapLine(*t))
			if t.Done() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(ui.IconTrophy+" Target reached!"))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&spent, "time", 0, "Time spent on these taps, e.g. 90s")

	return cmd
}

func newTapListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tap targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			all, err := svc.TapTargets(ctx)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No tap targets. Add one with `focus tap add`."))
				return nil
			}
			for _, t := range all {
				fmt.Fprintln(cmd.OutOrStdout(), tapLine(t))
			}
			return nil
		},
	}
	return cmd
}

func tapLine(t types.TapTarget) string {
	line := fmt.Sprintf("%s %s %s %d/%d", ui.IconTap, t.Title, ui.ScoreBar(t.Count, t.Target, 20), t.Count, t.Target)
	if t.TotalTime > 0 {
		line += " " + ui.Muted.Render(t.TotalTime.Round(time.Second).String())
	}
	return line + " " + ui.Muted.Render(shortID(t.ID))
}
