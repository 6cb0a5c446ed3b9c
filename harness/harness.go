// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package harness drives a counter target one clock edge at a time.
//
// A Harness owns a Target and a logical clock. Tests set the data inputs with
// SetInputs, advance the clock by whole edges with Advance and read the
// outputs with Sample. Inputs set before Advance are seen by the device on the
// first edge; samples always reflect the state after the last settled edge.
// No two of these operations ever overlap: the harness is meant to be used
// from a single goroutine.
//
// Scenarios, sequences of such operations with expected values, can be loaded
// from YAML and replayed with Run against any target.
//
package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/db47h/ttsim/counter"
	"github.com/pkg/errors"
)

// Sample is a snapshot of the counter outputs.
//
type Sample struct {
	Count uint8 `json:"count"` // uo_out
	Bus   uint8 `json:"bus"`   // uio_out
	Mask  uint8 `json:"mask"`  // uio_oe
}

// Driven returns true if the counter drives the bidirectional bus.
//
func (s Sample) Driven() bool { return s.Mask != 0 }

// BusValue returns the value driven on the bus and whether the bus is driven
// at all. A released bus reads as high impedance, not as 0.
//
func (s Sample) BusValue() (uint8, bool) {
	if !s.Driven() {
		return 0, false
	}
	return s.Bus & s.Mask, true
}

func (s Sample) String() string {
	if v, ok := s.BusValue(); ok {
		return fmt.Sprintf("count=0x%02X bus=0x%02X oe=0x%02X", s.Count, v, s.Mask)
	}
	return fmt.Sprintf("count=0x%02X bus=Z oe=0x%02X", s.Count, s.Mask)
}

// A Harness drives a Target.
//
type Harness struct {
	t     Target
	cfg   Config
	log   *slog.Logger
	in    counter.Inputs
	edges uint64
}

// Option configures a Harness.
//
type Option func(*Harness)

// WithLogger sets the harness logger. Edges are logged at debug level, resets
// and mismatches at info and warn levels.
//
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.log = l }
}

// WithConfig sets the harness configuration. Only Period and ResetEdges are
// used by the harness itself.
//
func WithConfig(cfg Config) Option {
	return func(h *Harness) { h.cfg = cfg }
}

// New returns a new Harness driving t.
//
func New(t Target, opts ...Option) *Harness {
	h := &Harness{
		t:   t,
		cfg: DefaultConfig(),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(h)
	}
	h.log = h.log.With("target", t.Name())
	return h
}

// Target returns the target driven by h.
//
func (h *Harness) Target() Target { return h.t }

// Edges returns the number of clock edges applied so far.
//
func (h *Harness) Edges() uint64 { return h.edges }

// Time returns the simulated time in ns.
//
func (h *Harness) Time() uint64 { return h.edges * h.cfg.Period }

// Inputs returns the last inputs set with SetInputs.
//
func (h *Harness) Inputs() counter.Inputs { return h.in }

// SetInputs drives the control nibble and the parallel load data. The previous
// values of all five are replaced. The counter sees them on the next edge.
//
func (h *Harness) SetInputs(in counter.Inputs) error {
	if err := h.t.Drive(counter.SigUIIn, uint64(in.Control())); err != nil {
		return err
	}
	if err := h.t.Drive(counter.SigUIOIn, uint64(in.Data)); err != nil {
		return err
	}
	h.in = in
	return nil
}

// Advance applies n clock edges. n = 0 is a no-op.
//
func (h *Harness) Advance(ctx context.Context, n int) error {
	if n < 0 {
		return errors.Errorf("invalid edge count %d", n)
	}
	for i := 0; i < n; i++ {
		if err := h.t.Edge(ctx); err != nil {
			return errors.Wrapf(err, "edge %d", h.edges+1)
		}
		h.edges++
		h.log.Debug("edge", "n", h.edges, "time_ns", h.Time())
	}
	return nil
}

// Sample reads the counter outputs.
//
func (h *Harness) Sample() (Sample, error) {
	var s Sample
	for _, f := range [...]struct {
		name string
		v    *uint8
	}{
		{counter.SigUOOut, &s.Count},
		{counter.SigUIOOut, &s.Bus},
		{counter.SigUIOOE, &s.Mask},
	} {
		v, err := h.t.Read(f.name)
		if err != nil {
			return s, err
		}
		*f.v = uint8(v)
	}
	return s, nil
}

// Reset enables the module, clears all data inputs, asserts reset for the
// given number of edges then releases it. If edges is 0, the configured
// ResetEdges is used.
//
func (h *Harness) Reset(ctx context.Context, edges int) error {
	if edges == 0 {
		edges = h.cfg.ResetEdges
	}
	if edges < 1 {
		return errors.Errorf("invalid reset length %d", edges)
	}
	h.log.Info("reset", "edges", edges, "time_ns", h.Time())
	if err := h.t.Drive(counter.SigEna, 1); err != nil {
		return err
	}
	if err := h.SetInputs(counter.Inputs{}); err != nil {
		return err
	}
	if err := h.t.Drive(counter.SigRstN, 0); err != nil {
		return err
	}
	if err := h.Advance(ctx, edges); err != nil {
		return errors.Wrap(err, "reset")
	}
	return h.t.Drive(counter.SigRstN, 1)
}

// SetEnable drives the module enable pin.
//
func (h *Harness) SetEnable(ena bool) error {
	var v uint64
	if ena {
		v = 1
	}
	return h.t.Drive(counter.SigEna, v)
}

func (h *Harness) mismatch(e *MismatchError) error {
	h.log.Warn("mismatch", "op", e.Op, "signal", e.Signal,
		"want", fmt.Sprintf("0x%02X", e.Want), "got", fmt.Sprintf("0x%02X", e.Got),
		"time_ns", h.Time())
	return e
}

// ExpectCount checks the count output.
//
func (h *Harness) ExpectCount(op string, want uint8) error {
	s, err := h.Sample()
	if err != nil {
		return err
	}
	if s.Count != want {
		return h.mismatch(&MismatchError{Op: op, Signal: counter.SigUOOut, Want: want, Got: s.Count})
	}
	return nil
}

// ExpectBus checks that the bus is fully driven with want.
//
func (h *Harness) ExpectBus(op string, want uint8) error {
	s, err := h.Sample()
	if err != nil {
		return err
	}
	if s.Mask != 0xFF {
		return h.mismatch(&MismatchError{Op: op, Signal: counter.SigUIOOE, Want: 0xFF, Got: s.Mask})
	}
	if s.Bus != want {
		return h.mismatch(&MismatchError{Op: op, Signal: counter.SigUIOOut, Want: want, Got: s.Bus})
	}
	return nil
}

// ExpectReleased checks that the bus is not driven.
//
func (h *Harness) ExpectReleased(op string) error {
	s, err := h.Sample()
	if err != nil {
		return err
	}
	if s.Mask != 0 {
		return h.mismatch(&MismatchError{Op: op, Signal: counter.SigUIOOE, Want: 0, Got: s.Mask})
	}
	return nil
}
