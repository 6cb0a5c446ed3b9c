// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim_test

import (
	"strings"
	"testing"

	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/hwlib"
	"github.com/pkg/errors"
)

const testTPC = 16

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// testGate checks a combinational part against its truth table. The first
// input is the most significant bit of the row number.
//
func testGate(t *testing.T, gate ttsim.NewPartFn, result [][]bool) {
	t.Helper()
	part := gate("").PartSpec
	inputs := make([]bool, len(part.Inputs))
	outputs := make([]bool, len(part.Outputs))
	var w []string
	parts := make(ttsim.Parts, 0, len(part.Inputs)+len(part.Outputs)+1)
	for i, n := range part.Inputs {
		w = append(w, n+"="+n)
		in := &inputs[i]
		parts = append(parts, hwlib.Input(func() bool { return *in })("out="+n))
	}
	for i, n := range part.Outputs {
		w = append(w, n+"="+n)
		out := &outputs[i]
		parts = append(parts, hwlib.Output(func(v bool) { *out = v })("in="+n))
	}
	parts = append(parts, gate(strings.Join(w, ", ")))
	c, err := ttsim.NewCircuit(0, testTPC, parts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	for i := 0; i < 1<<uint(len(inputs)); i++ {
		for bit := range inputs {
			inputs[len(inputs)-bit-1] = i&(1<<uint(bit)) != 0
		}
		c.TickTock()
		for o, out := range outputs {
			if exp := result[o][i]; exp != out {
				t.Errorf("%s %v: %s = %v, got %v", part.Name, inputs, part.Outputs[o], exp, out)
			}
		}
	}
}

func Test_gate_custom(t *testing.T) {
	and, err := ttsim.Chip("AND", "a, b", "out", ttsim.Parts{
		hwlib.Nand("a=a, b=b, out=nand"),
		hwlib.Nand("a=nand, b=nand, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	or, err := ttsim.Chip("OR", "a, b", "out", ttsim.Parts{
		hwlib.Nand("a=a, b=a, out=notA"),
		hwlib.Nand("a=b, b=b, out=notB"),
		hwlib.Nand("a=notA, b=notB, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	nor, err := ttsim.Chip("NOR", "a, b", "out", ttsim.Parts{
		or("a=a, b=b, out=orAB"),
		hwlib.Nand("a=orAB, b=orAB, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	xor, err := ttsim.Chip("XOR", "a, b", "out", ttsim.Parts{
		hwlib.Nand("a=a, b=b, out=nandAB"),
		hwlib.Nand("a=a, b=nandAB, out=w0"),
		hwlib.Nand("a=b, b=nandAB, out=w1"),
		hwlib.Nand("a=w0, b=w1, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	xnor, err := ttsim.Chip("XNOR", "a, b", "out", ttsim.Parts{
		xor("a=a, b=b, out=xorAB"),
		hwlib.Not("in=xorAB, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	not, err := ttsim.Chip("NOT", "a", "out", ttsim.Parts{
		hwlib.Nand("a=a, b=a, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	mux, err := ttsim.Chip("MUX", "a, b, sel", "out", ttsim.Parts{
		hwlib.Not("in=sel, out=notSel"),
		hwlib.And("a=a, b=notSel, out=w0"),
		hwlib.And("a=b, b=sel, out=w1"),
		hwlib.Or("a=w0, b=w1, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	dmux, err := ttsim.Chip("DMUX", "in, sel", "a, b", ttsim.Parts{
		hwlib.Not("in=sel, out=notSel"),
		hwlib.And("a=in, b=notSel, out=a"),
		hwlib.And("a=in, b=sel, out=b"),
	})
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		name   string
		gate   ttsim.NewPartFn
		result [][]bool
	}{
		{"AND", and, [][]bool{{false, false, false, true}}},
		{"OR", or, [][]bool{{false, true, true, true}}},
		{"NOR", nor, [][]bool{{true, false, false, false}}},
		{"XOR", xor, [][]bool{{false, true, true, false}}},
		{"XNOR", xnor, [][]bool{{true, false, false, true}}},
		{"NOT", not, [][]bool{{true, false}}},
		{"MUX", mux, [][]bool{{false, false, false, true, true, false, true, true}}},
		{"DMUX", dmux, [][]bool{{false, false, true, false}, {false, false, false, true}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			testGate(t, d.gate, d.result)
		})
	}
}

// Test a basic clock with a Nor gate.
//
// The purpose of this test is to catch changes in propagation delays
// from Inputs and Outputs as well as testing loops between input and outputs.
//
func Test_clock(t *testing.T) {
	var disable, tick bool

	check := func(v bool) {
		t.Helper()
		if tick != v {
			t.Errorf("expected %v, got %v", v, tick)
		}
	}
	// wrapped into a chip to add a layer of complexity.
	clk, err := ttsim.Chip("CLK", "disable", "tick", ttsim.Parts{
		hwlib.Nor("a=disable, b=tick, out=tick"),
	})
	if err != nil {
		t.Fatal(err)
	}
	c, err := ttsim.NewCircuit(0, testTPC, ttsim.Parts{
		hwlib.Input(func() bool { return disable })("out=disable"),
		clk("disable=disable, tick=out"),
		hwlib.Output(func(out bool) { tick = out })("in=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	// Input and Output each add one step of delay.
	disable = true
	c.Step()
	check(false)
	c.Step()
	// startup glitch: the Nor saw disable low in the first step.
	check(true)
	c.Step()
	check(false)
	c.Step()
	check(false)

	disable = false
	c.Step()
	check(false)
	c.Step()
	check(false)
	c.Step()
	// the clock starts ticking now.
	check(true)
	c.Step()
	check(false)
	c.Step()
	check(true)
	disable = true
	c.Step()
	check(false)
	c.Step()
	check(true)
	c.Step()
	// the clock stops ticking now.
	check(false)
	c.Step()
	check(false)
}

func TestCircuit_clk(t *testing.T) {
	var clk []bool
	c, err := ttsim.NewCircuit(1, 6, ttsim.Parts{
		hwlib.Output(func(b bool) { clk = append(clk, b) })("in=clk"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	if c.SPC() != 8 {
		t.Fatalf("SPC() = %d, expected 8", c.SPC())
	}
	var ticks, tocks []uint
	for i := 0; i < 16; i++ {
		if c.AtTick() {
			ticks = append(ticks, c.Steps())
		}
		if c.AtTock() {
			tocks = append(tocks, c.Steps())
		}
		c.Step()
	}
	want := []bool{true, true, true, true, false, false, false, false}
	for i, v := range clk {
		if v != want[i%8] {
			t.Fatalf("clk at step %d = %v, expected %v", i, v, want[i%8])
		}
	}
	if len(ticks) != 2 || ticks[0] != 0 || ticks[1] != 8 {
		t.Errorf("ticks at steps %v, expected [0 8]", ticks)
	}
	if len(tocks) != 2 || tocks[0] != 4 || tocks[1] != 12 {
		t.Errorf("tocks at steps %v, expected [4 12]", tocks)
	}

	// Tick runs up to the falling edge, Tock up to the next rising edge.
	c.Tick()
	if c.Steps() != 20 {
		t.Errorf("after Tick: step %d, expected 20", c.Steps())
	}
	c.Tock()
	if c.Steps() != 24 || !c.AtTick() {
		t.Errorf("after Tock: step %d, expected 24", c.Steps())
	}
	c.TickTock()
	if c.Steps() != 32 {
		t.Errorf("after TickTock: step %d, expected 32", c.Steps())
	}
}

func Test_toggle(t *testing.T) {
	osc := &ttsim.PartSpec{
		Name:    "OSC",
		Outputs: []string{"out"},
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			out := s.Pin("out")
			return []ttsim.Component{func(c *ttsim.Circuit) { c.Toggle(out) }}
		},
	}
	var got []bool
	c, err := ttsim.NewCircuit(0, testTPC, ttsim.Parts{
		osc.NewPart("out=osc"),
		hwlib.Output(func(b bool) { got = append(got, b) })("in=osc"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	for i := 0; i < 6; i++ {
		c.Step()
	}
	for i, v := range got {
		if v != (i%2 == 1) {
			t.Fatalf("step %d: osc = %v", i, v)
		}
	}
}

func TestNewCircuit_errors(t *testing.T) {
	if _, err := ttsim.NewCircuit(0, testTPC, nil); err == nil || err.Error() != "empty part list" {
		t.Errorf("got error %v, expected empty part list", err)
	}
	if _, err := ttsim.NewCircuit(0, ^uint(0), ttsim.Parts{hwlib.Not("in=false, out=y")}); err == nil || err.Error() != "steps per cycle out of range" {
		t.Errorf("got error %v, expected steps per cycle out of range", err)
	}
	_, err := ttsim.NewCircuit(0, testTPC, ttsim.Parts{
		hwlib.Not("in=x, out=y"),
	})
	if err == nil {
		t.Fatal("expected an error for an undriven wire")
	}
	if exp := "failed to create chip wrapper: pin x not connected to any output"; err.Error() != exp {
		t.Errorf("got error %q, expected %q", err, exp)
	}
}
