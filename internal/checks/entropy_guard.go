package checks

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veto-dev/veto/internal/detectors"
	"github.com/veto-dev/veto/internal/engine"
	"github.com/veto-dev/veto/internal/logging"
	"github.com/veto-dev/veto/internal/scope"
	"github.com/veto-dev/veto/internal/types"
)

const (
	EntropyGuardID = "EG-001"
	EntropyTag     = "entropy"
)

// EntropyGuard flags high-entropy tokens in the files selected by the scan
// scope.
type EntropyGuard struct {
	Policy   detectors.Policy
	Resolver scope.Resolver
	Logger   *zap.Logger
}

// NewEntropyGuard builds the check for policy, sharing logger with its
// resolver.
func NewEntropyGuard(policy detectors.Policy, logger *zap.Logger) *EntropyGuard {
	return &EntropyGuard{
		Policy:   policy,
		Resolver: scope.Resolver{Logger: logger},
		Logger:   logger,
	}
}

var _ engine.Check = (*EntropyGuard)(nil)

func (g *EntropyGuard) ID() string { return EntropyGuardID }

func (g *EntropyGuard) Description() string {
	return "Detects high-entropy strings that may be secrets"
}

// Run resolves the scope and scores every file. Files are scored on a
// bounded worker pool; findings come back in enumeration order, then line,
// then position within the line.
func (g *EntropyGuard) Run(ctx context.Context, sc engine.ScanContext) ([]types.Finding, error) {
	if !g.Policy.Enabled {
		return nil, nil
	}
	log := logging.OrNop(g.Logger)

	files, err := g.Resolver.Resolve(ctx, sc.Root, sc.Scope)
	if err != nil {
		return nil, fmt.Errorf("resolve %s scope: %w", sc.Scope, err)
	}

	results := make([][]types.Finding, len(files))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers(g.Policy.Threads))
	for i, f := range files {
		if g.Policy.SkipFile(f.Path) {
			log.Debug("skip: excluded by policy", zap.String("path", f.Path))
			continue
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = g.scanFile(f)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out []types.Finding
	for _, fs := range results {
		out = append(out, fs...)
	}
	log.Debug("entropy guard done", zap.Int("files", len(files)), zap.Int("findings", len(out)))
	return out, nil
}

func (g *EntropyGuard) scanFile(f scope.File) []types.Finding {
	var out []types.Finding
	for _, tok := range detectors.Tokenize(f.Content) {
		flagged, e := g.Policy.Score(tok.Value)
		if !flagged {
			continue
		}
		out = append(out, types.Finding{
			ID:       EntropyGuardID,
			Title:    "High-entropy token detected",
			Severity: types.SevHigh,
			Message: fmt.Sprintf("Possible secret detected (entropy: %.2f, len: %d). Content: %s",
				e, len(tok.Value), detectors.Mask(tok.Value)),
			Location: types.At(f.Path, tok.Line),
			Tags:     []string{EntropyTag},
		})
	}
	return out
}

func workers(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}
