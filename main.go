package main

import "github.com/veto-dev/veto/cmd/veto"

func main() { veto.Execute() }
