// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim"
)

var dff = &ttsim.PartSpec{
	Name:    "DFF",
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Mount: func(s *ttsim.Socket) []ttsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		var q bool
		return []ttsim.Component{
			func(c *ttsim.Circuit) {
				if c.AtTick() {
					q = c.Get(in)
				}
				c.Set(out, q)
			}}
	}}

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
// The flip-flop latches its input on the rising edge of clk. Its output is
// false at power-on.
//
func DFF(w string) ttsim.Part { return dff.NewPart(w) }

// DFFN returns a N-bits register of data flip flops.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i](t) = in[i](t-1) }
//
func DFFN(bits int) ttsim.NewPartFn {
	return (&ttsim.PartSpec{
		Name:    "DFF" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			q := make([]bool, bits)
			return []ttsim.Component{
				func(c *ttsim.Circuit) {
					if c.AtTick() {
						for i := range q {
							q[i] = c.Get(in[i])
						}
					}
					for i := range q {
						c.Set(out[i], q[i])
					}
				}}
		}}).NewPart
}
