// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package main

import (
	"os"
	"sort"

	"github.com/radportal-labs/radportal/internal/utilities"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"github.com/spf13/cobra"
)

func newExportCommand(dataDir *string) *cobra.Command {
	var (
		output string
		start  string
		end    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export exams as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = reg.Close() }()

			exams, err := reg.Exams.List(cmd.Context())
			if err != nil {
				return err
			}

			from, to := utilities.DayBounds(start, end)
			filtered := make([]schemas.Exam, 0, len(exams))
			for _, e := range exams {
				when := e.PerformedAt.Time
				if !from.IsZero() && when.Before(from) {
					continue
				}
				if !to.IsZero() && !when.Before(to) {
					continue
				}
				filtered = append(filtered, e)
			}
			sort.SliceStable(filtered, func(i, j int) bool {
				return filtered[i].PerformedAt.Time.Before(filtered[j].PerformedAt.Time)
			})

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer utilities.CloseAndLog(f)
				out = f
			}
			return registry.WriteExamsCSV(out, filtered)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&start, "start", "", "start date, DD/MM/YYYY")
	cmd.Flags().StringVar(&end, "end", "", "end date, DD/MM/YYYY")

	return cmd
}
