package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/veto-dev/veto/pkg/core"
)

// ExampleScan runs the staged-content checks over the current repository.
func ExampleScan() {
	policy := core.DefaultPolicy()
	policy.Allowlist = []string{"EXAMPLE_"}

	rep, err := core.Scan(context.Background(), core.Options{
		Root:   ".",
		Scope:  core.ScopeStaged,
		Policy: policy,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}
	if len(rep.Findings) == 0 {
		fmt.Println("No secrets found.")
		return
	}
	fmt.Printf("Found %d issue(s).\n", len(rep.Findings))
	_ = core.MarshalReport(os.Stdout, rep)
}
