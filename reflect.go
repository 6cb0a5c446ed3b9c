// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must
// implement. See MakePart.
//
type Updater interface {
	Update(c *Circuit)
}

// pinField describes a struct field holding a pin or bus number.
//
type pinField struct {
	index int    // field index
	name  string // pin or bus name
	in    bool
	bits  int // 0 for a single pin
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pin fields must be of type int. Buses must be arrays of int, element 0 being
// the least significant bit. Untagged fields are left alone and can hold the
// component's internal state: every mount gets a fresh zero value of the
// struct.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	fields := pinFields(typ)
	sp := &PartSpec{
		Name: typ.Name(),
	}
	for _, f := range fields {
		var names []string
		if f.bits == 0 {
			names = []string{f.name}
		} else {
			for i := 0; i < f.bits; i++ {
				names = append(names, BusPinName(f.name, i))
			}
		}
		if f.in {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
	}
	sp.Mount = mountPart(typ, fields)
	return sp
}

func pinFields(typ reflect.Type) []pinField {
	var fields []pinField
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, name: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.name = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.in = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Int:
			pf.bits = ft.Len()
		case k == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}
		fields = append(fields, pf)
	}
	return fields
}

func mountPart(typ reflect.Type, fields []pinField) MountFn {
	return func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, f := range fields {
			fv := e.Field(f.index)
			if f.bits == 0 {
				fv.SetInt(int64(s.Pin(f.name)))
				continue
			}
			for i := 0; i < f.bits; i++ {
				fv.Index(i).SetInt(int64(s.Pin(BusPinName(f.name, i))))
			}
		}
		u := v.Interface().(Updater)
		return []Component{u.Update}
	}
}
