package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veto-dev/veto/internal/logging"
	"github.com/veto-dev/veto/internal/scope"
	"github.com/veto-dev/veto/internal/types"
)

// ScanContext identifies what a run examines. It is built once per
// invocation and handed to every check by value.
type ScanContext struct {
	Root  string
	Scope scope.Mode
}

// Check is one detector. Run returns the check's findings in emission order,
// or an error when the check could not complete.
type Check interface {
	ID() string
	Description() string
	Run(ctx context.Context, sc ScanContext) ([]types.Finding, error)
}

// CheckError wraps the failure of a single check.
type CheckError struct {
	CheckID string
	Err     error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check %s failed: %v", e.CheckID, e.Err)
}

func (e *CheckError) Unwrap() error { return e.Err }

// Runner executes an ordered list of checks.
type Runner struct {
	checks []Check
	Logger *zap.Logger
}

// NewRunner returns a runner with checks registered in the given order.
func NewRunner(checks ...Check) *Runner {
	return &Runner{checks: checks}
}

// Register appends c to the run order.
func (r *Runner) Register(c Check) *Runner {
	r.checks = append(r.checks, c)
	return r
}

// Checks returns the registered checks in run order.
func (r *Runner) Checks() []Check {
	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}

// Run executes each check sequentially. Findings are tagged with their
// check's ID and concatenated in check order. The first failing check stops
// the run and no report is returned.
func (r *Runner) Run(ctx context.Context, sc ScanContext) (types.Report, error) {
	log := logging.OrNop(r.Logger)
	started := time.Now()
	var out []types.Finding
	for _, c := range r.checks {
		checkStart := time.Now()
		fs, err := c.Run(ctx, sc)
		if err != nil {
			log.Debug("check failed", zap.String("check", c.ID()), zap.Error(err))
			return types.Report{}, &CheckError{CheckID: c.ID(), Err: err}
		}
		for _, f := range fs {
			out = append(out, f.WithTag(c.ID()))
		}
		log.Debug("check finished",
			zap.String("check", c.ID()),
			zap.Int("findings", len(fs)),
			zap.Duration("elapsed", time.Since(checkStart)))
	}
	// no `null` in JSON
	if out == nil {
		out = []types.Finding{}
	}
	return types.Report{
		Findings:   out,
		DurationMS: time.Since(started).Milliseconds(),
	}, nil
}
