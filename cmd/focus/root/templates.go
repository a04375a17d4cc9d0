package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/ui"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List built-in mission templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconScroll, "Templates"))
			for _, t := range engine.Templates() {
				in := t.Input
				fmt.Fprintf(w, "- %s %s\n", ui.Key.Render(t.Code), ui.Muted.Render(t.Description))
				fmt.Fprintf(w, "    %d days, %d pts/day, buffer %d, penalty %s\n", in.DurationDays, in.DailyPointTarget, in.BufferDays, in.PenaltyType)
				if len(in.DailyHabits) > 0 {
					fmt.Fprintf(w, "    habits: %s\n", strings.Join(in.DailyHabits, ", "))
				}
			}
			fmt.Fprintln(w, ui.Muted.Render("Use one with `focus new --template <code>`."))
			return nil
		},
	}
	return cmd
}
