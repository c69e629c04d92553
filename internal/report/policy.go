package report

import "github.com/veto-dev/veto/internal/types"

// ShouldFail reports whether the report's worst severity reaches failOn.
// An empty report never fails.
func ShouldFail(rep types.Report, failOn types.Severity) bool {
	worst, ok := rep.WorstSeverity()
	return ok && worst >= failOn
}
