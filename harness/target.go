// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"context"
	"sort"

	"github.com/db47h/ttsim/counter"
	"github.com/pkg/errors"
)

// Clock advances a device under test by whole clock edges.
//
type Clock interface {
	// Edge runs one rising clock edge and returns once the outputs of the
	// device have settled. Inputs driven before the call are sampled by the
	// device on that edge.
	Edge(ctx context.Context) error
}

// Signals reads and drives named device signals. Bus values are packed with
// bit 0 as the least significant bit.
//
type Signals interface {
	// Drive sets an input signal. The device sees it from the next edge on.
	Drive(name string, v uint64) error
	// Read returns the value of a signal. Outputs reflect the state after the
	// last settled edge.
	Read(name string) (uint64, error)
}

// A Target is a device under test together with its clock.
//
type Target interface {
	Clock
	Signals
	// Name returns the target kind.
	Name() string
	// Close releases the resources held by the target.
	Close() error
}

type signal struct {
	bits   int
	output bool
}

// signals is the counter's signal table.
var signals = map[string]signal{
	counter.SigRstN:   {1, false},
	counter.SigEna:    {1, false},
	counter.SigUIIn:   {counter.Width, false},
	counter.SigUIOIn:  {counter.Width, false},
	counter.SigUOOut:  {counter.Width, true},
	counter.SigUIOOut: {counter.Width, true},
	counter.SigUIOOE:  {counter.Width, true},
}

// checkDrive checks that name is an input and v fits its width.
//
func checkDrive(name string, v uint64) error {
	s, ok := signals[name]
	switch {
	case !ok:
		return errors.Errorf("unknown signal %q", name)
	case s.output:
		return errors.Errorf("signal %q is an output", name)
	case v>>uint(s.bits) != 0:
		return errors.Errorf("value 0x%X out of range for %d-bit signal %q", v, s.bits, name)
	}
	return nil
}

func unknownSignal(name string) error {
	return errors.Errorf("unknown signal %q", name)
}

// Target kinds.
//
const (
	TargetModel = "model" // counter.Model driven directly
	TargetRTL   = "rtl"   // counter.RTL in a circuit
	TargetGates = "gates" // counter.Gates in a circuit
)

var targets = map[string]string{
	TargetModel: "state machine driven directly, one call per edge",
	TargetRTL:   "behavioral part in a stepped circuit",
	TargetGates: "gate-level chip (adder, muxes, flip-flops) in a stepped circuit",
}

// Targets returns the available target kinds.
//
func Targets() []string {
	names := make([]string, 0, len(targets))
	for n := range targets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one line description of a target kind.
//
func Describe(name string) string { return targets[name] }

// NewTarget creates a target of the given kind.
//
func NewTarget(name string, cfg Config) (Target, error) {
	switch name {
	case TargetModel:
		return NewModelTarget(), nil
	case TargetRTL:
		return NewSimTarget(TargetRTL, counter.RTL, cfg)
	case TargetGates:
		gates, err := counter.Gates()
		if err != nil {
			return nil, errors.Wrap(err, "build gate-level counter")
		}
		return NewSimTarget(TargetGates, gates, cfg)
	}
	return nil, errors.Errorf("unknown target %q", name)
}
