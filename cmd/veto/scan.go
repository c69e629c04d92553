package veto

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veto-dev/veto/internal/config"
	"github.com/veto-dev/veto/internal/report"
	"github.com/veto-dev/veto/internal/scope"
	"github.com/veto-dev/veto/internal/types"
	"github.com/veto-dev/veto/pkg/core"
)

var (
	flagFormat  string
	flagScope   string
	flagFailOn  string
	flagThreads int
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan staged or modified files for secrets",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: text|table|json|sarif (default text)")
	cmd.Flags().StringVar(&flagScope, "scope", "", "files to scan: staged|worktree|repo (default staged)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit 1 at or above: low|medium|high|critical (default high)")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
}

func runScan(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	root, err := resolveRepo(log)
	if err != nil {
		return err
	}
	settings, _, err := loadSettings(root, log)
	if err != nil {
		return err
	}
	settings, err = applyScanFlags(cmd, settings)
	if err != nil {
		return err
	}
	log.Debug("scan settings",
		zap.String("root", root),
		zap.Stringer("scope", settings.Scope),
		zap.String("format", settings.Format),
		zap.Stringer("fail_on", settings.FailOn))

	rep, err := core.Scan(cmd.Context(), core.Options{
		Root:   root,
		Scope:  settings.Scope,
		Policy: settings.Policy,
		Logger: log,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeReport(out, rep, settings.Format, colorFor(out)); err != nil {
		return err
	}
	if report.ShouldFail(rep, settings.FailOn) {
		return errFailOn
	}
	return nil
}

// applyScanFlags overlays scan flags onto s. Unknown enumerated values are
// rejected.
func applyScanFlags(cmd *cobra.Command, s config.Settings) (config.Settings, error) {
	format, err := config.ParseFormat(pickString(flagFormat, s.Format))
	if err != nil {
		return s, err
	}
	mode, err := scope.ParseMode(pickString(flagScope, s.Scope.String()))
	if err != nil {
		return s, err
	}
	failOn, err := types.ParseSeverity(pickString(flagFailOn, s.FailOn.String()))
	if err != nil {
		return s, fmt.Errorf("--fail-on: %w", err)
	}
	s.Format, s.Scope, s.FailOn = format, mode, failOn
	s.Policy.Threads = pickInt(flagThreads, cmd.Flags().Changed("threads"), s.Policy.Threads)
	return s, nil
}

func writeReport(w io.Writer, rep types.Report, format string, color bool) error {
	switch format {
	case "json":
		return report.WriteJSON(w, rep)
	case "sarif":
		return report.WriteSARIF(w, rep, version)
	case "table":
		return report.PrintTable(w, rep, report.PrintOptions{NoColor: !color})
	default:
		report.PrintText(w, rep, report.PrintOptions{NoColor: !color})
		return nil
	}
}
