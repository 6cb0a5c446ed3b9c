// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cli implements the ttcounter command.
//
package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RootOptions holds the global flags.
//
type RootOptions struct {
	Verbose bool
	Format  string // "text" or "json"
}

// formats lists the valid output formats.
var formats = []string{"text", "json"}

// NewRootCommand creates the ttcounter command.
//
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ttcounter",
		Short: "Verify an 8-bit up/down counter, cycle by cycle",
		Long: `ttcounter drives an 8-bit up/down counter with synchronous load and a
tri-state output bus through test scenarios, one clock edge at a time.

The counter can be run as a plain state machine (model), as a behavioral
part in a stepped circuit (rtl) or as a gate-level chip (gates).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range formats {
				if f == opts.Format {
					return nil
				}
			}
			return errors.Errorf("invalid format %q: must be one of %v", opts.Format, formats)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log edges and resets to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewTargetsCommand(opts))
	return cmd
}
