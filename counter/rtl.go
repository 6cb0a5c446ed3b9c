// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package counter

import (
	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/hwlib"
)

// rtl mounts a Model into a circuit.
//
type rtl struct {
	RstN   int        `hw:"in,rst_n"`
	Ena    int        `hw:"in,ena"`
	UI     [Width]int `hw:"in,ui_in"`
	UIO    [Width]int `hw:"in,uio_in"`
	Out    [Width]int `hw:"out,uo_out"`
	BusOut [Width]int `hw:"out,uio_out"`
	BusOE  [Width]int `hw:"out,uio_oe"`

	m Model
}

func (r *rtl) Update(c *ttsim.Circuit) {
	r.m.Drive(Pins{
		RstN: c.Get(r.RstN),
		Ena:  c.Get(r.Ena),
		UI:   uint8(hwlib.Int64(c, r.UI[:])),
		UIO:  uint8(hwlib.Int64(c, r.UIO[:])),
	})
	if c.AtTick() {
		r.m.Edge()
	}
	o := r.m.Outputs()
	hwlib.SetInt64(c, r.Out[:], int64(o.Out))
	hwlib.SetInt64(c, r.BusOut[:], int64(o.BusOut))
	hwlib.SetInt64(c, r.BusOE[:], int64(o.BusOE))
}

var rtlSpec = func() *ttsim.PartSpec {
	sp := ttsim.MakePart((*rtl)(nil))
	sp.Name = "COUNTER"
	return sp
}()

// RTL returns the counter as a single behavioral part.
//
//	Inputs: rst_n, ena, ui_in[8], uio_in[8]
//	Outputs: uo_out[8], uio_out[8], uio_oe[8]
//
func RTL(w string) ttsim.Part { return rtlSpec.NewPart(w) }
