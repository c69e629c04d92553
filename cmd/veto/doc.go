// Package veto provides the command-line interface for the veto pre-commit
// checker. It configures subcommands (scan, doctor, config, version), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/veto-dev/veto/cmd/veto"
//	func main() { veto.Execute() }
package veto
