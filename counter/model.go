// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package counter

// Model is the counter state machine. The count register is its only state and
// is owned by the Model; everything else is derived from it and from the
// currently driven pins.
//
// The zero value is a powered-on counter whose register is undefined until a
// reset or a parallel load.
//
type Model struct {
	in      Pins
	count   uint8
	defined bool
}

// Drive sets the input pins. Outputs that depend combinationally on inputs
// (the bus drive enable) follow immediately; the register changes only on Edge.
//
func (m *Model) Drive(p Pins) { m.in = p }

// Pins returns the currently driven input pins.
//
func (m *Model) Pins() Pins { return m.in }

// Edge applies one rising clock edge:
//
//	rst_n low:         count = 0
//	ena low:           hold
//	load:              count = uio_in
//	enable, up:        count = count + 1 (mod 256)
//	enable, down:      count = count - 1 (mod 256)
//	otherwise:         hold
//
func (m *Model) Edge() {
	ctl := Control(m.in.UI) & Mask
	switch {
	case !m.in.RstN:
		m.count = 0
		m.defined = true
	case !m.in.Ena:
	case ctl.Has(Load):
		m.count = m.in.UIO
		m.defined = true
	case ctl.Has(Enable | Up):
		m.count++
	case ctl.Has(Enable):
		m.count--
	}
}

// Outputs returns the output pins for the current register and inputs.
//
func (m *Model) Outputs() Outputs {
	o := Outputs{Out: m.count}
	if Control(m.in.UI).Has(OutputEnable) {
		o.BusOut = m.count
		o.BusOE = 0xFF
	}
	return o
}

// Count returns the count register.
//
func (m *Model) Count() uint8 { return m.count }

// Defined returns false until the register has been given a known value by a
// reset or a parallel load.
//
func (m *Model) Defined() bool { return m.defined }
