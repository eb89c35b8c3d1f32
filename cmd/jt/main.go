// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Command jt tracks job applications in a CSV file. Run without arguments it
// opens the interactive browser; any argument selects the command line.
package main

import (
	"os"

	"job-tracker/cmd/cli"
	"job-tracker/cmd/tui"
)

func main() {
	if len(os.Args) > 1 {
		cli.RunCLI()
		return
	}
	tui.RunTUI()
}
