// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

import (
	"github.com/pkg/errors"
)

// wiring tracks which part pin drives and which part pins read each wire of a
// chip.
//
type wiring struct {
	ins     map[string]bool
	outs    map[string]bool
	drivers map[string]string // wire -> "PART.pin"
	readers map[string]string // wire -> first reader
	order   []string          // wires in order of first use
}

func newWiring(inputs, outputs []string) *wiring {
	w := &wiring{
		ins:     make(map[string]bool, len(inputs)),
		outs:    make(map[string]bool, len(outputs)),
		drivers: make(map[string]string),
		readers: make(map[string]string),
	}
	for _, i := range inputs {
		w.ins[i] = true
	}
	for _, o := range outputs {
		w.outs[o] = true
	}
	return w
}

func isConstant(name string) bool {
	return name == False || name == True || name == Clk
}

func (w *wiring) use(wire string) {
	if _, ok := w.drivers[wire]; ok {
		return
	}
	if _, ok := w.readers[wire]; ok {
		return
	}
	w.order = append(w.order, wire)
}

func (w *wiring) read(wire, by string) {
	w.use(wire)
	if _, ok := w.readers[wire]; !ok {
		w.readers[wire] = by
	}
}

func (w *wiring) drive(wire, by string) error {
	switch {
	case isConstant(wire):
		return errors.Errorf("%s:%s: output pin connected to constant %s input", by, wire, wire)
	case w.ins[wire]:
		return errors.Errorf("%s:%s: chip input pin used as output", by, wire)
	}
	if _, ok := w.drivers[wire]; ok {
		return errors.Errorf("%s:%s: output pin already used as output", by, wire)
	}
	w.use(wire)
	w.drivers[wire] = by
	return nil
}

// add registers the connections of part p.
//
func (w *wiring) add(p Part) error {
	seen := make(map[string]bool, len(p.Conns))
	for _, cn := range p.Conns {
		pin := p.Name + "." + cn.PP
		switch {
		case p.isInput(cn.PP):
			if seen[cn.PP] {
				return errors.Errorf("%s: input pin connected more than once", pin)
			}
			seen[cn.PP] = true
			if len(cn.CP) > 1 {
				return errors.Errorf("%s: input pin connected to more than one wire", pin)
			}
			w.read(cn.CP[0], pin)
		case p.isOutput(cn.PP):
			for _, v := range cn.CP {
				if err := w.drive(v, pin); err != nil {
					return err
				}
			}
		default:
			return errors.New("invalid pin name " + cn.PP + " for part " + p.Name)
		}
	}
	return nil
}

// check reports wires that are read but never driven, and internal wires that
// are driven but never read.
//
func (w *wiring) check() error {
	for _, wire := range w.order {
		_, driven := w.drivers[wire]
		_, read := w.readers[wire]
		switch {
		case read && !driven && !w.ins[wire] && !isConstant(wire):
			return errors.New("pin " + wire + " not connected to any output")
		case driven && !read && !w.outs[wire]:
			return errors.New("pin " + wire + " not connected to any input")
		}
	}
	return nil
}
