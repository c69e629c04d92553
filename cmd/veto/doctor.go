package veto

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/veto-dev/veto/internal/git"
)

func init() {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report repository, git and configuration status",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
	rootCmd.AddCommand(cmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "veto %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	root, err := resolveRepo(log)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "repo root:  %s\n", root)

	if meta, err := git.RepoMetadata(root); err != nil {
		fmt.Fprintf(out, "repository: not a git repository (%v)\n", err)
	} else {
		fmt.Fprintf(out, "branch:     %s\n", orNone(meta.Branch))
		fmt.Fprintf(out, "HEAD:       %s\n", orNone(meta.Commit))
	}

	if p, ok := git.Available(); ok {
		fmt.Fprintf(out, "git:        %s\n", p)
	} else {
		fmt.Fprintln(out, "git:        not found on PATH (scans will fail)")
	}

	settings, path, err := loadSettings(root, log)
	if err != nil {
		fmt.Fprintf(out, "config:     invalid: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "config:     %s\n", orNone(path))
	fmt.Fprintf(out, "scope:      %s\n", settings.Scope)
	fmt.Fprintf(out, "fail-on:    %s\n", settings.FailOn)
	fmt.Fprintf(out, "entropy:    enabled=%t min_length=%d threshold=%.2f\n",
		settings.Policy.Enabled, settings.Policy.MinLength, settings.Policy.Threshold)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
