// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

import (
	"github.com/pkg/errors"
)

type chip struct {
	PartSpec
	parts Parts
}

func (c *chip) mount(s *Socket) []Component {
	var cs []Component

	for _, p := range c.parts {
		sub := newSocket(s.c)
		for _, cn := range p.Conns {
			if p.isInput(cn.PP) {
				sub.m[cn.PP] = s.PinOrNew(cn.CP[0])
				continue
			}
			// output: all container wires share the same pin. A wire that
			// already has its own pin (a chip output allocated by the
			// container) gets a copy of the signal.
			pin, ok := sub.m[cn.PP]
			if !ok {
				pin = -1
				for _, w := range cn.CP {
					if n, ok := s.m[w]; ok {
						pin = n
						break
					}
				}
				if pin < 0 {
					pin = s.c.allocPin()
				}
				sub.m[cn.PP] = pin
			}
			for _, w := range cn.CP {
				n, ok := s.m[w]
				switch {
				case !ok:
					s.m[w] = pin
				case n != pin:
					cs = append(cs, buffer(pin, n))
				}
			}
		}
		// wire unconnected inputs to false, give unconnected outputs a
		// dangling pin.
		for _, i := range p.Inputs {
			if _, ok := sub.m[i]; !ok {
				sub.m[i] = cstFalse
			}
		}
		for _, o := range p.Outputs {
			if _, ok := sub.m[o]; !ok {
				sub.m[o] = s.c.allocPin()
			}
		}
		cs = append(cs, p.Mount(sub)...)
	}
	return cs
}

func buffer(in, out int) Component {
	return func(c *Circuit) { c.Set(out, c.Get(in)) }
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip. See IO for the syntax of the inputs and outputs
// specification strings.
//
// An Xor gate could be created like this:
//
//	xor, err := ttsim.Chip("XOR", "a, b", "out", ttsim.Parts{
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	})
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := ttsim.Chip("XNOR", "a, b", "out", ttsim.Parts{
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	})
//
// Chip inputs may be read by several parts. Every wire read by a part must be a
// chip input, a constant (true, false, clk) or the output of another part. Part
// inputs left unconnected are wired to false.
//
func Chip(name string, inputs, outputs string, parts Parts) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}

	wr := newWiring(ins, outs)
	for _, p := range parts {
		if err := wr.add(p); err != nil {
			return nil, err
		}
	}
	if err := wr.check(); err != nil {
		return nil, err
	}

	c := &chip{
		PartSpec{
			Name:    name,
			Inputs:  ins,
			Outputs: outs,
		},
		parts,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}
