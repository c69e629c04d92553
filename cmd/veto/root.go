package veto

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagRepo    string
	flagConfig  string
	flagNoColor bool
	flagVerbose bool

	version = "0.1.0"
)

// errFailOn reports that a scan produced findings at or above the fail-on
// severity. Execute maps it to exit status 1.
var errFailOn = errors.New("findings at or above fail-on severity")

// rootCmd is the base Cobra command for the veto CLI.
var rootCmd = &cobra.Command{
	Use:           "veto",
	Short:         "Block commits that contain secrets",
	Long:          "veto inspects staged or modified files in a git repository and reports high-entropy tokens that look like secrets.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the veto CLI. It should be called by the main package.
// Exit status is 0 when clean, 1 when findings reach the fail-on severity
// and 2 on any other error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFailOn) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "repository root (default: enclosing git worktree of the current directory)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: veto.toml or .veto.yml in the repository root)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging on stderr")
}
