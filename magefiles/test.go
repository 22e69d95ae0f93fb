//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test groups test targets (all, unit, integration, cover).
type Test mg.Namespace

// testFlags holds the options accepted after a test target name.
type testFlags struct {
	run  string
	race bool
}

// parseTestFlags reads --run and --race from targetArgs.
func parseTestFlags(target string) testFlags {
	var tf testFlags
	fs := flag.NewFlagSet(target, flag.ContinueOnError)
	fs.StringVar(&tf.run, "run", "", "only run tests matching this regexp")
	fs.BoolVar(&tf.race, "race", false, "enable the race detector")
	parseTargetFlags(fs)
	return tf
}

// args returns the go test arguments for tf.
func (tf testFlags) args() []string {
	args := []string{"test", "-v"}
	if tf.race {
		args = append(args, "-race")
	}
	if tf.run != "" {
		args = append(args, "-run", tf.run)
	}
	return args
}

// All runs all tests (unit and integration).
func (Test) All() error {
	tf := parseTestFlags("test:all")
	return sh.RunV(binGo, append(tf.args(), "./...")...)
}

// Unit runs only unit tests, excluding the tests/ directory.
func (Test) Unit() error {
	tf := parseTestFlags("test:unit")
	pkgs, err := unitPackages()
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	return sh.RunV(binGo, append(tf.args(), pkgs...)...)
}

// Integration builds first, then runs only integration tests.
func (Test) Integration() error {
	if _, err := os.Stat("tests"); os.IsNotExist(err) {
		fmt.Println("No integration test directory found (tests/).")
		return nil
	}
	tf := parseTestFlags("test:integration")
	mg.Deps(Build)
	return sh.RunV(binGo, append(tf.args(), "./tests/...")...)
}

// Cover runs the unit tests with a coverage profile and prints the summary.
func (Test) Cover() error {
	pkgs, err := unitPackages()
	if err != nil {
		return err
	}
	args := append([]string{"test", "-coverprofile", coverProfile}, pkgs...)
	if err := sh.RunV(binGo, args...); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", coverProfile)
}

// unitPackages lists module packages outside tests/.
func unitPackages() ([]string, error) {
	out, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return nil, err
	}
	var pkgs []string
	for pkg := range strings.SplitSeq(out, "\n") {
		if pkg != "" && !strings.Contains(pkg, "/tests/") && !strings.HasSuffix(pkg, "/tests") {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, nil
}
