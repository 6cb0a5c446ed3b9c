// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package counter implements a clocked 8-bit up/down counter with synchronous
// parallel load and a tri-state output bus, in the pin layout of a tiny-tapeout
// user module:
//
//	rst_n        active low synchronous reset
//	ena          module enable, high while the design is selected
//	ui_in[8]     control nibble, see Control; bits 4 to 7 are ignored
//	uio_in[8]    parallel load data
//	uo_out[8]    count register
//	uio_out[8]   count register when output enable is set
//	uio_oe[8]    0xFF when output enable is set, 0x00 otherwise
//
// The package provides the state machine itself (Model), the same machine as a
// simulator part (RTL) and a gate-level rendition built from hwlib parts
// (Gates).
//
package counter

import "strings"

// Width is the register and bus width in bits.
//
const Width = 8

// Signal names.
//
const (
	SigRstN   = "rst_n"
	SigEna    = "ena"
	SigUIIn   = "ui_in"
	SigUIOIn  = "uio_in"
	SigUOOut  = "uo_out"
	SigUIOOut = "uio_out"
	SigUIOOE  = "uio_oe"
)

// Pin specifications shared by RTL and Gates.
//
const (
	InputPins  = "rst_n, ena, ui_in[8], uio_in[8]"
	OutputPins = "uo_out[8], uio_out[8], uio_oe[8]"
)

// Control is the control nibble driven on ui_in[3:0].
//
type Control uint8

// Control bits.
//
const (
	Enable       Control = 1 << iota // count on the next edge
	Up                               // count direction, 1 = up
	Load                             // load uio_in on the next edge, overrides Enable
	OutputEnable                     // drive uio_out
)

// Mask is the set of meaningful control bits.
//
const Mask = Enable | Up | Load | OutputEnable

// Has returns true if all bits of f are set in c.
//
func (c Control) Has(f Control) bool { return c&f == f }

// Inputs returns the input vector for control nibble c and load data.
//
func (c Control) Inputs(data uint8) Inputs {
	return Inputs{
		Enable:       c.Has(Enable),
		Up:           c.Has(Up),
		Load:         c.Has(Load),
		OutputEnable: c.Has(OutputEnable),
		Data:         data,
	}
}

func (c Control) String() string {
	var b strings.Builder
	for i, n := range [...]string{"en", "up", "ld", "oe"} {
		if i > 0 {
			b.WriteByte('|')
		}
		if c&(1<<uint(i)) != 0 {
			b.WriteString(n)
		} else {
			b.WriteString("--")
		}
	}
	return b.String()
}

// PackControl packs individual control signals into a control nibble.
//
func PackControl(enable, up, load, oe bool) Control {
	var c Control
	if enable {
		c |= Enable
	}
	if up {
		c |= Up
	}
	if load {
		c |= Load
	}
	if oe {
		c |= OutputEnable
	}
	return c
}

// Inputs is the set of data inputs a test bench applies to the counter: the
// control signals and the parallel load value.
//
type Inputs struct {
	Enable       bool
	Up           bool
	Load         bool
	OutputEnable bool
	Data         uint8
}

// Control returns the control nibble for in.
//
func (in Inputs) Control() Control {
	return PackControl(in.Enable, in.Up, in.Load, in.OutputEnable)
}

// Pins is the state of every input pin of the counter.
//
type Pins struct {
	RstN bool
	Ena  bool
	UI   uint8
	UIO  uint8
}

// Outputs is the state of every output pin of the counter.
//
type Outputs struct {
	Out    uint8 // uo_out
	BusOut uint8 // uio_out
	BusOE  uint8 // uio_oe
}
