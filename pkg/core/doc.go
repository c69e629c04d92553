// Package core provides a small, stable facade over veto's internal engine
// for programs that want to run the pre-commit checks without the CLI.
//
// Example:
//
//	rep, err := core.Scan(ctx, core.Options{Root: ".", Policy: core.DefaultPolicy()})
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, rep)
package core
