// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

import (
	"strconv"

	"github.com/db47h/ttsim/internal/hdl"
	"github.com/pkg/errors"
)

// A Connection connects the pin PP of a part to the pins CP of its container.
//
type Connection struct {
	PP string
	CP []string
}

// BusPinName returns the name of the i-th pin of bus name.
//
func BusPinName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// IO parses an input or output pin specification string and returns a slice of
// individual pin names suitable for use as the Input or Output field of a
// PartSpec.
//
// The input format is:
//
//	InputDecl  = PinDecl { "," PinDecl } .
//	PinDecl    = PinIdentifier [ "[" size "]" ] .
//
// For example:
//
//	IO("a, b, bus[2], c")
//
// will be expanded to
//
//	[]string{"a", "b", "bus[0]", "bus[1]", "c"}
//
// IO panics on malformed input. Use ParseIOSpec to get an error instead.
//
func IO(spec string) []string {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// ParseIOSpec parses a pin specification string. See IO.
//
func ParseIOSpec(names string) ([]string, error) {
	var out []string
	p := &hdl.Parser{Input: names}
	for {
		v, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		switch v := v.(type) {
		case nil:
			return out, nil
		case hdl.Pin:
			out = append(out, v.Name)
		case hdl.PinIndex:
			for i := 0; i < v.Index; i++ {
				out = append(out, BusPinName(v.Name, i))
			}
		default:
			return nil, errors.Errorf("in %q: unsupported pin range in i/o specification", names)
		}
	}
}

// ParseConnections parses a connection configuration like "partPin1=chipPin1,
// partPin2=chipPin2" into a []Connection.
//
//	Wiring     = Connection { "," Connection } .
//	Connection = PinExpr "=" PinExpr .
//	PinExpr    = PinIdentifier [ "[" Index | Range "]" ] .
//	Index      = integer .
//	Range      = integer ".." integer .
//
// Ranges connect pins one to one, a single container pin is broadcast to every
// part pin of a range, and a single part pin may be connected to several
// container pins (outputs only).
//
func ParseConnections(c string) (conns []Connection, err error) {
	p := &hdl.Parser{Input: c}
	for {
		v, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return conns, nil
		}
		a, ok := v.(hdl.PinAssignment)
		if !ok {
			return nil, errors.Errorf("in %q: expected pin assignment", c)
		}
		pp, err := expandPin(a.LHS)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", c)
		}
		cp, err := expandPin(a.RHS)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", c)
		}
		switch {
		case len(pp) == len(cp):
			for i := range pp {
				conns = append(conns, Connection{PP: pp[i], CP: []string{cp[i]}})
			}
		case len(pp) == 1:
			conns = append(conns, Connection{PP: pp[0], CP: cp})
		case len(cp) == 1:
			for i := range pp {
				conns = append(conns, Connection{PP: pp[i], CP: cp})
			}
		default:
			return nil, errors.Errorf("in %q: pin count mismatch in pin mapping %s=%s", c, pinExprString(a.LHS), pinExprString(a.RHS))
		}
	}
}

func expandPin(v interface{}) ([]string, error) {
	switch v := v.(type) {
	case hdl.Pin:
		return []string{v.Name}, nil
	case hdl.PinIndex:
		return []string{BusPinName(v.Name, v.Index)}, nil
	case hdl.PinRange:
		if v.End < v.Start {
			return nil, errors.Errorf("invalid range %s[%d..%d]", v.Name, v.Start, v.End)
		}
		r := make([]string, 0, v.End-v.Start+1)
		for i := v.Start; i <= v.End; i++ {
			r = append(r, BusPinName(v.Name, i))
		}
		return r, nil
	}
	panic("unexpected pin expression")
}

func pinExprString(v interface{}) string {
	switch v := v.(type) {
	case hdl.Pin:
		return v.Name
	case hdl.PinIndex:
		return BusPinName(v.Name, v.Index)
	case hdl.PinRange:
		return v.Name + "[" + strconv.Itoa(v.Start) + ".." + strconv.Itoa(v.End) + "]"
	}
	return "?"
}
