// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"github.com/pkg/errors"
)

// MaxStepsPerCycle is the largest accepted Config.StepsPerCycle.
//
const MaxStepsPerCycle = 1 << 16

// Config holds the settings of a test bench.
//
type Config struct {
	// Period is the clock period in ns. It only scales reported times; the
	// counter is edge triggered and does not depend on it.
	Period uint64
	// StepsPerCycle is the number of simulation steps per clock cycle for
	// circuit based targets. See ttsim.NewCircuit.
	StepsPerCycle uint
	// Workers is the number of goroutines evaluating a circuit step.
	Workers int
	// ResetEdges is the number of edges reset is held for by Reset when
	// called with 0 edges.
	ResetEdges int
}

// DefaultConfig returns the default configuration: a 10 MHz clock, 16 steps
// per cycle, a single worker and a 1 us reset.
//
func DefaultConfig() Config {
	return Config{
		Period:        100,
		StepsPerCycle: 16,
		Workers:       1,
		ResetEdges:    10,
	}
}

// Validate checks that all settings are usable.
//
func (c Config) Validate() error {
	switch {
	case c.Period == 0:
		return errors.New("clock period must be positive")
	case c.StepsPerCycle < 16:
		// the gate-level counter needs 7 steps to propagate its inputs
		// within half a cycle.
		return errors.Errorf("steps per cycle must be at least 16, got %d", c.StepsPerCycle)
	case c.StepsPerCycle > MaxStepsPerCycle:
		return errors.Errorf("steps per cycle must be at most %d, got %d", MaxStepsPerCycle, c.StepsPerCycle)
	case c.Workers < 0:
		return errors.Errorf("invalid worker count %d", c.Workers)
	case c.ResetEdges < 1:
		return errors.Errorf("reset must be held for at least one edge, got %d", c.ResetEdges)
	}
	return nil
}
