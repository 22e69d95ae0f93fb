// Package main provides the qty CLI.
package main

import "github.com/mesh-intelligence/quantities/internal/cli"

func main() {
	cli.Execute()
}
