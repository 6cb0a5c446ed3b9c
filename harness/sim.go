// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"context"

	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/counter"
	"github.com/db47h/ttsim/hwlib"
	"github.com/pkg/errors"
)

// SimTarget runs a counter part in a ttsim circuit. Input signals are fed by
// hwlib inputs and outputs are captured by hwlib probes.
//
// An edge is the low half of a clock cycle, during which driven inputs
// propagate to the flip-flops, followed by the rising edge and the high half
// cycle, during which the new register value propagates to the outputs. The
// circuit therefore always rests in the middle of a cycle between calls to
// Edge, the only point where inputs are changed and outputs read.
//
type SimTarget struct {
	name   string
	c      *ttsim.Circuit
	in     map[string]*int64
	out    map[string]*int64
	closed bool
}

// NewSimTarget mounts dut, which must have the pins of counter.RTL, into a new
// circuit. The module is enabled and reset released.
//
func NewSimTarget(name string, dut ttsim.NewPartFn, cfg Config) (*SimTarget, error) {
	var rstN, ena, ui, uio, out, busOut, busOE int64 = 1, 1, 0, 0, 0, 0, 0
	t := &SimTarget{
		name: name,
		in: map[string]*int64{
			counter.SigRstN:  &rstN,
			counter.SigEna:   &ena,
			counter.SigUIIn:  &ui,
			counter.SigUIOIn: &uio,
		},
		out: map[string]*int64{
			counter.SigUOOut:  &out,
			counter.SigUIOOut: &busOut,
			counter.SigUIOOE:  &busOE,
		},
	}
	input := func(v *int64) func() int64 { return func() int64 { return *v } }
	output := func(v *int64) func(int64) { return func(n int64) { *v = n } }

	c, err := ttsim.NewCircuit(cfg.Workers, cfg.StepsPerCycle, ttsim.Parts{
		hwlib.InputN(1, input(&rstN))("out[0]=rst_n"),
		hwlib.InputN(1, input(&ena))("out[0]=ena"),
		hwlib.InputN(counter.Width, input(&ui))("out[0..7]=ui_in[0..7]"),
		hwlib.InputN(counter.Width, input(&uio))("out[0..7]=uio_in[0..7]"),
		dut("rst_n=rst_n, ena=ena, ui_in[0..7]=ui_in[0..7], uio_in[0..7]=uio_in[0..7], " +
			"uo_out[0..7]=uo_out[0..7], uio_out[0..7]=uio_out[0..7], uio_oe[0..7]=uio_oe[0..7]"),
		hwlib.OutputN(counter.Width, output(&out))("in[0..7]=uo_out[0..7]"),
		hwlib.OutputN(counter.Width, output(&busOut))("in[0..7]=uio_out[0..7]"),
		hwlib.OutputN(counter.Width, output(&busOE))("in[0..7]=uio_oe[0..7]"),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "build %s circuit", name)
	}
	// power-on: run up to the middle of the first cycle.
	c.Tick()
	t.c = c
	return t, nil
}

// Circuit returns the underlying circuit.
//
func (t *SimTarget) Circuit() *ttsim.Circuit { return t.c }

// Name implements Target.
//
func (t *SimTarget) Name() string { return t.name }

// Edge implements Clock.
//
func (t *SimTarget) Edge(ctx context.Context) error {
	if t.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.c.Tock()
	t.c.Tick()
	return nil
}

// Drive implements Signals.
//
func (t *SimTarget) Drive(name string, v uint64) error {
	if t.closed {
		return ErrClosed
	}
	if err := checkDrive(name, v); err != nil {
		return err
	}
	*t.in[name] = int64(v)
	return nil
}

// Read implements Signals.
//
func (t *SimTarget) Read(name string) (uint64, error) {
	if t.closed {
		return 0, ErrClosed
	}
	if v, ok := t.in[name]; ok {
		return uint64(*v), nil
	}
	if v, ok := t.out[name]; ok {
		return uint64(*v), nil
	}
	return 0, unknownSignal(name)
}

// Close implements Target. It stops the circuit's workers. Closing a closed
// target is a no-op.
//
func (t *SimTarget) Close() error {
	if !t.closed {
		t.closed = true
		t.c.Dispose()
	}
	return nil
}
