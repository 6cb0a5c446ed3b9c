// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/hwlib"
	"github.com/db47h/ttsim/hwtest"
)

func TestHalfAdder(t *testing.T) {
	h, err := ttsim.Chip("myHalfAdder", "a, b", "s, c", ttsim.Parts{
		hwlib.Xor("a=a, b=b, out=s"),
		hwlib.And("a=a, b=b, out=c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hwlib.HalfAdder, h)
}

func TestFullAdder(t *testing.T) {
	h, err := ttsim.Chip("myHalfAdder", "a, b", "s, c", ttsim.Parts{
		hwlib.Xor("a=a, b=b, out=s"),
		hwlib.And("a=a, b=b, out=c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	adder, err := ttsim.Chip("myFullAdder", "a, b, cin", "s, cout", ttsim.Parts{
		h("a=a, b=b, s=s0, c=c0"),
		h("a=s0, b=cin, s=s, c=c1"),
		hwlib.Or("a=c0, b=c1, out=cout"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, testTPC, hwlib.FullAdder, adder)
}

func TestAdderN(t *testing.T) {
	add4, err := ttsim.Chip("Adder4", "a[4], b[4]", "out[4], c", ttsim.Parts{
		hwlib.HalfAdder("a=a[0], b=b[0], s=out[0], c=c0"),
		hwlib.FullAdder("a=a[1], b=b[1], cin=c0, s=out[1], cout=c1"),
		hwlib.FullAdder("a=a[2], b=b[2], cin=c1, s=out[2], cout=c2"),
		hwlib.FullAdder("a=a[3], b=b[3], cin=c2, s=out[3], cout=c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, testTPC, hwlib.AdderN(4), add4)
}

func TestAdderN_wrap(t *testing.T) {
	var a, b, out, carry int64
	c, err := ttsim.NewCircuit(0, testTPC, ttsim.Parts{
		hwlib.InputN(8, func() int64 { return a })("out[0..7]=a[0..7]"),
		hwlib.InputN(8, func() int64 { return b })("out[0..7]=b[0..7]"),
		hwlib.AdderN(8)("a[0..7]=a[0..7], b[0..7]=b[0..7], out[0..7]=s[0..7], c=c"),
		hwlib.OutputN(8, func(v int64) { out = v })("in[0..7]=s[0..7]"),
		hwlib.OutputN(1, func(v int64) { carry = v })("in[0]=c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	f := func(x, y uint8) bool {
		a, b = int64(x), int64(y)
		c.TickTock()
		sum := int64(x) + int64(y)
		return out == sum&0xff && carry == sum>>8
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	// adding 0xff decrements.
	a, b = 0, 0xff
	c.TickTock()
	if out != 0xff || carry != 0 {
		t.Fatalf("0 + 0xff = %x carry %d", out, carry)
	}
}
