//go:build mage

// Package main provides build targets for the quantities project using Mage.
//
// Usage:
//
//	mage build             Compile the qty binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage test:cover        Run unit tests and write coverage.out
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install qty to GOPATH/bin
//	mage stats             Print Go LOC and documentation word counts
//
// Test targets accept flags after the target name, for example
// "mage test:unit --run Parse --race".
package main

// Default target to run when none is specified.
var Default = Build
