// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim"
)

// Int64 returns the pins as an int64. Pin 0 is lsb.
//
func Int64(c *ttsim.Circuit, pins []int) int64 {
	var out int64
	for bit := range pins {
		if c.Get(pins[bit]) {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// SetInt64 sets the pins to the given int64 value.
//
func SetInt64(c *ttsim.Circuit, pins []int, v int64) {
	for bit := range pins {
		c.Set(pins[bit], v&(1<<uint(bit)) != 0)
	}
}

// Input creates a function based input.
//
//	Outputs: out
//	Function: out = f()
//
// f is called once per simulation step. Its result reaches the circuit one
// step later.
//
func Input(f func() bool) ttsim.NewPartFn {
	return (&ttsim.PartSpec{
		Name:    "Input",
		Outputs: []string{pOut},
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			pin := s.Pin(pOut)
			return []ttsim.Component{
				func(c *ttsim.Circuit) {
					c.Set(pin, f())
				},
			}
		},
	}).NewPart
}

// Output creates an output or probe. The fn function is
// called with the named pin state on every circuit update.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(bool)) ttsim.NewPartFn {
	return (&ttsim.PartSpec{
		Name:   "Output",
		Inputs: []string{pIn},
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			in := s.Pin(pIn)
			return []ttsim.Component{
				func(c *ttsim.Circuit) { f(c.Get(in)) },
			}
		},
	}).NewPart
}

// InputN creates an input bus of the given bits size.
//
//	Outputs: out[bits]
//	Function: out = f()
//
func InputN(bits int, f func() int64) ttsim.NewPartFn {
	return (&ttsim.PartSpec{
		Name:    "INPUT" + strconv.Itoa(bits),
		Outputs: bus(bits, pOut),
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			pins := s.Bus(pOut, bits)
			return []ttsim.Component{func(c *ttsim.Circuit) {
				SetInt64(c, pins, f())
			}}
		}}).NewPart
}

// OutputN creates an output bus of the given bits size.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func OutputN(bits int, f func(int64)) ttsim.NewPartFn {
	return (&ttsim.PartSpec{
		Name:   "OUTPUT" + strconv.Itoa(bits),
		Inputs: bus(bits, pIn),
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			pins := s.Bus(pIn, bits)
			return []ttsim.Component{func(c *ttsim.Circuit) {
				f(Int64(c, pins))
			}}
		}}).NewPart
}
