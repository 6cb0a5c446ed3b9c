// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"context"

	"github.com/db47h/ttsim/counter"
)

// ModelTarget drives a counter.Model directly. Driven inputs are held until the
// next edge so that outputs, combinational ones included, only change on Edge,
// as with a circuit.
//
type ModelTarget struct {
	m      counter.Model
	pins   counter.Pins
	closed bool
}

// NewModelTarget returns a powered-on model with the module enabled and reset
// released.
//
func NewModelTarget() *ModelTarget {
	return &ModelTarget{pins: counter.Pins{RstN: true, Ena: true}}
}

// Model returns the counter owned by t.
//
func (t *ModelTarget) Model() *counter.Model { return &t.m }

// Name implements Target.
//
func (t *ModelTarget) Name() string { return TargetModel }

// Edge implements Clock.
//
func (t *ModelTarget) Edge(ctx context.Context) error {
	if t.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.m.Drive(t.pins)
	t.m.Edge()
	return nil
}

// Drive implements Signals.
//
func (t *ModelTarget) Drive(name string, v uint64) error {
	if t.closed {
		return ErrClosed
	}
	if err := checkDrive(name, v); err != nil {
		return err
	}
	switch name {
	case counter.SigRstN:
		t.pins.RstN = v != 0
	case counter.SigEna:
		t.pins.Ena = v != 0
	case counter.SigUIIn:
		t.pins.UI = uint8(v)
	case counter.SigUIOIn:
		t.pins.UIO = uint8(v)
	}
	return nil
}

// Read implements Signals.
//
func (t *ModelTarget) Read(name string) (uint64, error) {
	if t.closed {
		return 0, ErrClosed
	}
	o := t.m.Outputs()
	switch name {
	case counter.SigRstN:
		return b2u(t.pins.RstN), nil
	case counter.SigEna:
		return b2u(t.pins.Ena), nil
	case counter.SigUIIn:
		return uint64(t.pins.UI), nil
	case counter.SigUIOIn:
		return uint64(t.pins.UIO), nil
	case counter.SigUOOut:
		return uint64(o.Out), nil
	case counter.SigUIOOut:
		return uint64(o.BusOut), nil
	case counter.SigUIOOE:
		return uint64(o.BusOE), nil
	}
	return 0, unknownSignal(name)
}

// Close implements Target.
//
func (t *ModelTarget) Close() error {
	t.closed = true
	return nil
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
