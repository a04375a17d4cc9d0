package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrboora04/focuspoint/internal/ui"
)

const Version = "0.1.0"

// Global flags; they override the config file and FOCUS_* variables.
var (
	flagConfig    string
	flagDB        string
	flagTZ        string
	flagEphemeral bool
	flagMission   string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "focus",
	Short:         "FocusPoint — daily mission tracker",
	Long:          "FocusPoint tracks time-boxed missions: daily habits, a point target per day, buffer days, and a penalty when you miss.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default $FOCUS_CONFIG or ~/.config/focuspoint/config.yaml)")
	pf.StringVar(&flagDB, "db", "", "SQLite database path (default ~/.focuspoint.db)")
	pf.StringVar(&flagTZ, "tz", "", "Time zone whose midnight starts a new day (default Local)")
	pf.BoolVar(&flagEphemeral, "ephemeral", false, "Keep everything in memory for this run")
	pf.StringVarP(&flagMission, "mission", "m", "", "Mission id or id prefix (default: active mission)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log engine decisions to stderr")

	rootCmd.AddCommand(
		newNewCmd(),
		newTemplatesCmd(),
		newListCmd(),
		newUseCmd(),
		newStatusCmd(),
		newAddCmd(),
		newDoCmd(),
		newAcceptCmd(),
		newRestartCmd(),
		newAckCmd(),
		newHistoryCmd(),
		newStatsCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newTapCmd(),
		newExportCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
