// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/db47h/ttsim/harness"
	"github.com/spf13/cobra"
)

// RunOptions holds the flags of the run command.
//
type RunOptions struct {
	*RootOptions
	Target        string
	Period        uint64
	StepsPerCycle uint
	Workers       int
	ResetEdges    int
	Trace         bool
}

// RunReport is the JSON output of the run command.
//
type RunReport struct {
	Target  string            `json:"target"`
	Results []*harness.Result `json:"results"`
	Passed  int               `json:"passed"`
	Failed  int               `json:"failed"`
	Total   int               `json:"total"`
}

// NewRunCommand creates the run command.
//
func NewRunCommand(root *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: root}
	def := harness.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "run [scenario.yaml ...]",
		Short: "Run test scenarios",
		Long: `Run test scenarios against a counter implementation.

Without arguments, the built-in scenarios are run. Each scenario runs on a
fresh target and stops at its first mismatch.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (bad flag, unreadable scenario, etc.)

Examples:
  ttcounter run
  ttcounter run --target gates --trace
  ttcounter run --format json my_scenario.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Target, "target", "t", harness.TargetRTL, "counter implementation (see targets)")
	f.Uint64Var(&opts.Period, "period", def.Period, "clock period in ns")
	f.UintVar(&opts.StepsPerCycle, "steps-per-cycle", def.StepsPerCycle, "simulation steps per clock cycle")
	f.IntVar(&opts.Workers, "workers", def.Workers, "goroutines per simulation step")
	f.IntVar(&opts.ResetEdges, "reset-edges", def.ResetEdges, "default reset length in edges")
	f.BoolVar(&opts.Trace, "trace", false, "print the trace of passing scenarios too")
	return cmd
}

func loadScenarios(files []string) ([]*harness.Scenario, error) {
	if len(files) == 0 {
		return harness.Builtin()
	}
	scs := make([]*harness.Scenario, 0, len(files))
	for _, fn := range files {
		sc, err := harness.LoadScenario(fn)
		if err != nil {
			return nil, err
		}
		scs = append(scs, sc)
	}
	return scs, nil
}

func runScenarios(cmd *cobra.Command, opts *RunOptions, files []string) error {
	cfg := harness.Config{
		Period:        opts.Period,
		StepsPerCycle: opts.StepsPerCycle,
		Workers:       opts.Workers,
		ResetEdges:    opts.ResetEdges,
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	scs, err := loadScenarios(files)
	if err != nil {
		return WrapExitError(ExitCommandError, "load scenarios", err)
	}

	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	w := cmd.OutOrStdout()
	p := painter(isTerminal(w))
	rep := RunReport{Target: opts.Target, Total: len(scs)}

	for _, sc := range scs {
		res, err := harness.RunTarget(cmd.Context(), opts.Target, cfg, sc, harness.WithLogger(log))
		if err != nil {
			return WrapExitError(ExitCommandError, "run "+sc.Name, err)
		}
		rep.Results = append(rep.Results, res)
		if res.Passed {
			rep.Passed++
		} else {
			rep.Failed++
		}
		if opts.Format == "json" {
			continue
		}
		if res.Passed {
			fmt.Fprintf(w, "%s %s (%s, %d edges)\n", p.pass(), res.Name, res.Target, res.Edges)
		} else {
			fmt.Fprintf(w, "%s %s (%s): %s\n", p.fail(), res.Name, res.Target, res.Failure)
		}
		if opts.Trace || !res.Passed {
			if err := harness.WriteTrace(w, res); err != nil {
				return err
			}
		}
	}

	if opts.Format == "json" {
		if err := writeJSON(w, rep); err != nil {
			return err
		}
	}
	if rep.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", rep.Failed, rep.Total))
	}
	return nil
}
