// Package engine defines the check contract and the runner that executes
// registered checks against a repository and aggregates their findings into
// a report. This package is internal; external consumers should use the
// stable facade in pkg/core.
package engine
