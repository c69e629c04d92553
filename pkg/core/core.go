package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/veto-dev/veto/internal/checks"
	"github.com/veto-dev/veto/internal/detectors"
	"github.com/veto-dev/veto/internal/engine"
	"github.com/veto-dev/veto/internal/scope"
	"github.com/veto-dev/veto/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Finding  = types.Finding
	Report   = types.Report
	Severity = types.Severity
	Policy   = detectors.Policy
	Mode     = scope.Mode
)

const (
	ScopeStaged   = scope.Staged
	ScopeWorktree = scope.Worktree
	ScopeRepo     = scope.Repo
)

// Options configures a single Scan.
type Options struct {
	Root   string
	Scope  Mode
	Policy Policy
	// Logger receives debug output; nil discards it.
	Logger *zap.Logger
}

// DefaultPolicy returns the built-in entropy policy.
func DefaultPolicy() Policy { return detectors.DefaultPolicy() }

// Scan runs every built-in check against opts.Root.
func Scan(ctx context.Context, opts Options) (Report, error) {
	r := engine.NewRunner(checks.NewEntropyGuard(opts.Policy, opts.Logger))
	r.Logger = opts.Logger
	return r.Run(ctx, engine.ScanContext{Root: opts.Root, Scope: opts.Scope})
}

// CheckIDs lists the built-in checks in run order.
func CheckIDs() []string {
	r := engine.NewRunner(checks.NewEntropyGuard(detectors.DefaultPolicy(), nil))
	var ids []string
	for _, c := range r.Checks() {
		ids = append(ids, c.ID())
	}
	return ids
}
