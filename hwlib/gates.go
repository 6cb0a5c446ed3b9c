// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim"
)

var notGate = &ttsim.PartSpec{
	Name:    "NOT",
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Mount: func(s *ttsim.Socket) []ttsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []ttsim.Component{
			func(c *ttsim.Circuit) { c.Set(out, !c.Get(in)) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) ttsim.Part {
	return notGate.NewPart(w)
}

// other gates
type gate func(a, b bool) bool

func (g gate) mount(s *ttsim.Socket) []ttsim.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return []ttsim.Component{
		func(c *ttsim.Circuit) { c.Set(out, g(c.Get(a), c.Get(b))) },
	}
}

func newGate(name string, fn func(a, b bool) bool) *ttsim.PartSpec {
	return &ttsim.PartSpec{
		Name:    name,
		Inputs:  []string{pA, pB},
		Outputs: []string{pOut},
		Mount:   gate(fn).mount,
	}
}

func and(a, b bool) bool  { return a && b }
func nand(a, b bool) bool { return !(a && b) }
func or(a, b bool) bool   { return a || b }
func nor(a, b bool) bool  { return !(a || b) }
func xor(a, b bool) bool  { return a != b }
func xnor(a, b bool) bool { return a == b }

var (
	andGate  = newGate("AND", and)
	nandGate = newGate("NAND", nand)
	orGate   = newGate("OR", or)
	norGate  = newGate("NOR", nor)
	xorGate  = newGate("XOR", xor)
	xnorGate = newGate("XNOR", xnor)
)

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) ttsim.Part { return andGate.NewPart(w) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(w string) ttsim.Part { return nandGate.NewPart(w) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) ttsim.Part { return orGate.NewPart(w) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor(w string) ttsim.Part { return norGate.NewPart(w) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a != b
//
func Xor(w string) ttsim.Part { return xorGate.NewPart(w) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a == b
//
func Xnor(w string) ttsim.Part { return xnorGate.NewPart(w) }

// NotN returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(bits int) ttsim.NewPartFn {
	return (&ttsim.PartSpec{
		Name:    "NOT" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			ins, outs := s.Bus(pIn, bits), s.Bus(pOut, bits)
			return []ttsim.Component{func(c *ttsim.Circuit) {
				for i, pin := range ins {
					c.Set(outs[i], !c.Get(pin))
				}
			}}
		}}).NewPart
}

type gateN struct {
	bits int
	fn   func(bool, bool) bool
}

func (g *gateN) mount(s *ttsim.Socket) []ttsim.Component {
	a, b, out := s.Bus(pA, g.bits), s.Bus(pB, g.bits), s.Bus(pOut, g.bits)
	return []ttsim.Component{
		func(c *ttsim.Circuit) {
			for i := range a {
				c.Set(out[i], g.fn(c.Get(a[i]), c.Get(b[i])))
			}
		},
	}
}

// GateN returns a N-bits logic gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = f(a[i], b[i]) }
//
func GateN(name string, bits int, f func(bool, bool) bool) ttsim.NewPartFn {
	return (&ttsim.PartSpec{
		Name:    name + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: bus(bits, pOut),
		Mount:   (&gateN{bits, f}).mount,
	}).NewPart
}

// AndN returns a N-bits AND gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = a[i] && b[i] }
//
func AndN(bits int) ttsim.NewPartFn { return GateN("AND", bits, and) }

// OrN returns a N-bits OR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = a[i] || b[i] }
//
func OrN(bits int) ttsim.NewPartFn { return GateN("OR", bits, or) }
