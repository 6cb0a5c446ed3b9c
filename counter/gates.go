// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package counter

import (
	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/hwlib"
)

// Gates returns the counter built from hwlib parts. It has the same pins as RTL
// and produces the same outputs for any input sequence, power-on included.
//
// The next register value is selected by two muxes (count, then load) and
// forced to zero by ANDing it with rst_n. Counting down adds 0xFF.
//
func Gates() (ttsim.NewPartFn, error) {
	var (
		add8 = hwlib.AdderN(Width)
		mux8 = hwlib.MuxN(Width)
		and8 = hwlib.AndN(Width)
		dff8 = hwlib.DFFN(Width)
	)
	return ttsim.Chip("COUNTER_GATES", InputPins, OutputPins, ttsim.Parts{
		hwlib.And("a=ena, b=ui_in[0], out=count"),
		hwlib.And("a=ena, b=ui_in[2], out=load"),
		hwlib.Not("in=ui_in[1], out=down"),
		add8("a[0..7]=uo_out[0..7], b[0]=true, b[1..7]=down, out[0..7]=next[0..7]"),
		mux8("a[0..7]=uo_out[0..7], b[0..7]=next[0..7], sel=count, out[0..7]=m0[0..7]"),
		mux8("a[0..7]=m0[0..7], b[0..7]=uio_in[0..7], sel=load, out[0..7]=m1[0..7]"),
		and8("a[0..7]=m1[0..7], b[0..7]=rst_n, out[0..7]=d[0..7]"),
		dff8("in[0..7]=d[0..7], out[0..7]=uo_out[0..7]"),
		and8("a[0..7]=uo_out[0..7], b[0..7]=ui_in[3], out[0..7]=uio_out[0..7]"),
		and8("a[0..7]=ui_in[3], b[0..7]=true, out[0..7]=uio_oe[0..7]"),
	})
}
