// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cgtcheck parses a single canonical-form expression and prints
// its canonical textual form, temperature, and mean. It exists to
// exercise the game package from the command line, not as a product
// surface in its own right.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"gonum.org/v1/cgt/game"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cgtcheck 'expression'\n\nexpression grammar: nus | \"{\" list \"|\" list \"}\"\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("cgtcheck: expected exactly one argument, got %d", flag.NArg())
	}

	cf, err := game.Parse(strings.TrimSpace(flag.Arg(0)))
	if err != nil {
		log.Fatalf("cgtcheck: %v", err)
	}

	fmt.Printf("canonical form: %s\n", cf)
	fmt.Printf("temperature:    %s\n", cf.Temperature())
	fmt.Printf("mean:           %s\n", cf.Mean())
}
