package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newDoCmd() *cobra.Command {
	var grade string
	var points int

	cmd := &cobra.Command{
		Use:   "do <task>",
		Short: "Complete a task (by list number or id)",
		Long: `Complete a task on today's list and score it.

Grades: fail (-15), good (+10), better (+25), best (+50).
--points overrides the grade with an exact value (negative allowed).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task number or id is required")
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

			g, err := engine.ParseGrade(grade)
			if err != nil {
				return err
			}
			pts := g.Points()
			if cmd.Flags().Changed("points") {
				pts = points
			}

			res, err := svc.CompleteTask(ctx, flagMission, args[0], pts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !res.Applied {
				return skipError(res.Skipped)
			}

			line := fmt.Sprintf("%s %s %s", ui.Good.Render(ui.IconDone+" Done"), res.Task.Title, ui.Muted.Render(fmt.Sprintf("(%+d pts, today %d)", pts, res.ScoreAfter)))
			if res.Celebrate && !res.TargetReached {
				line += " " + ui.IconSparkle
			}
			fmt.Fprintln(w, line)
			if res.TargetReached {
				fmt.Fprintln(w, ui.BadgeTarget+" "+ui.Gold.Render(ui.IconFire+" Day complete!"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grade, "grade", "g", "good", "Grade (fail|good|better|best)")
	cmd.Flags().IntVar(&points, "points", 0, "Exact points instead of a grade")

	return cmd
}

func skipError(reason engine.SkipReason) error {
	switch reason {
	case engine.SkipBreachPending:
		return errors.New("mission breached: run `focus accept` or `focus restart` first")
	case engine.SkipUnknownTask:
		return errors.New("no such task on today's list")
	case engine.SkipAlreadyDone:
		return errors.New("task already completed today")
	case engine.SkipStaleDay:
		return errors.New("today has not started for this mission yet")
	default:
		return fmt.Errorf("task not completed (%s)", reason)
	}
}
