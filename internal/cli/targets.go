// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/db47h/ttsim/harness"
	"github.com/spf13/cobra"
)

type targetInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewTargetsCommand creates the targets command.
//
func NewTargetsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the available counter implementations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ts []targetInfo
			for _, n := range harness.Targets() {
				ts = append(ts, targetInfo{n, harness.Describe(n)})
			}
			w := cmd.OutOrStdout()
			if opts.Format == "json" {
				return writeJSON(w, ts)
			}
			for _, t := range ts {
				fmt.Fprintf(w, "%-6s %s\n", t.Name, t.Description)
			}
			return nil
		},
	}
}
