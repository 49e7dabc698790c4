// Package main provides the CLI for leapboard, the dashboards-as-code
// compiler.
package main

import "github.com/leapstack-labs/leapboard/internal/cli"

func main() {
	cli.Execute()
}
