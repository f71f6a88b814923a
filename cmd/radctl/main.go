// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// radctl is the operator CLI for the exam registry. It works directly on
// the data directory, so the API server must be stopped first; the
// directory lock enforces that.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "radctl",
		Short:         "Administer the exam registry data directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "data", "path to the data directory")

	root.AddCommand(newUserCommand(&dataDir))
	root.AddCommand(newExportCommand(&dataDir))
	root.AddCommand(newConfigCommand())

	return root
}
