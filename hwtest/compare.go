// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/hwlib"
)

func connString(in, out []string) string {
	var b strings.Builder
	for _, n := range append(in[:len(in):len(in)], out...) {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	return b.String()
}

// pinList turns expanded pin names back into an i/o specification string.
//
func pinList(in []string) string {
	bus := make(map[string]int)
	var names []string

	for _, n := range in {
		b := strings.IndexRune(n, '[')
		if b < 0 {
			names = append(names, n)
			continue
		}
		bn := n[:b]
		idx, err := strconv.Atoi(n[b+1 : strings.IndexRune(n, ']')])
		if err != nil {
			panic(err)
		}
		bidx, ok := bus[bn]
		if !ok {
			names = append(names, bn)
		}
		if !ok || bidx < idx {
			bus[bn] = idx
		}
	}

	var b strings.Builder
	for _, n := range names {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		if idx, ok := bus[n]; ok {
			b.WriteRune('[')
			b.WriteString(strconv.Itoa(idx + 1))
			b.WriteRune(']')
		}
	}
	return b.String()
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// The parts are driven with all inputs low, then all inputs high, then random
// input vectors. Each vector is applied for one full clock cycle and outputs are
// compared once the rising edge has settled, so clocked parts are compared
// cycle by cycle from power-on.
//
func ComparePart(t *testing.T, tpc uint, part1 ttsim.NewPartFn, part2 ttsim.NewPartFn) {
	t.Helper()

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	ps1, ps2 := part1(""), part2("")

	// compare specs
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatal("len(ps1.Inputs) != len(ps2.Inputs)")
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatal("len(ps1.Outputs) != len(ps2.Outputs)")
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("ps1.Inputs[i] = %q != ps2.Inputs[i] = %q", ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("ps1.Outputs[i] = %q != ps2.Outputs[i] = %q", ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	conns := connString(ps1.Inputs, ps1.Outputs)
	ps1, ps2 = part1(conns), part2(conns)

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))

	// build two wrappers with their own set of outputs
	parts1 := ttsim.Parts{ps1}
	for i, o := range ps1.Outputs {
		n := i
		parts1 = append(parts1, hwlib.Output(func(b bool) { outputs[n][0] = b })("in="+o))
	}
	parts2 := ttsim.Parts{ps2}
	for i, o := range ps2.Outputs {
		n := i
		parts2 = append(parts2, hwlib.Output(func(b bool) { outputs[n][1] = b })("in="+o))
	}
	w1, err := ttsim.Chip("wrapper1", pinList(ps1.Inputs), "", parts1)
	if err != nil {
		t.Fatal(err)
	}
	w2, err := ttsim.Chip("wrapper2", pinList(ps2.Inputs), "", parts2)
	if err != nil {
		t.Fatal(err)
	}

	var parts ttsim.Parts
	for i, n := range ps1.Inputs {
		k := i
		parts = append(parts, hwlib.Input(func() bool { return inputs[k] })("out="+n))
	}
	cstr := connString(ps1.Inputs, nil)
	parts = append(parts, w1(cstr), w2(cstr))

	c, err := ttsim.NewCircuit(0, tpc, parts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	errString := func(oname string, ex, got bool) string {
		var b strings.Builder
		for i, n := range ps1.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(n)
			b.WriteRune('=')
			b.WriteString(strconv.FormatBool(inputs[i]))
		}
		return fmt.Sprintf("seed %d\nExpected %s => %s=%v\nGot %v", seed, b.String(), oname, ex, got)
	}

	check := func() {
		t.Helper()
		// falling edge then rising edge: inputs propagate during the low half
		// cycle, clocked parts latch and settle during the high half.
		c.Tock()
		c.Tick()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatal(errString(ps1.Outputs[o], out[0], out[1]))
			}
		}
	}

	iter := len(ps1.Inputs)
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)

	start := time.Now()

	// power-on: first half cycle.
	c.Tick()

	// try all 0
	check()

	// try all 1
	for in := range inputs {
		inputs[in] = true
	}
	check()

	for i := 0; i < iter; i++ {
		for in := range inputs {
			inputs[in] = rnd.Int63()&(1<<62) != 0
		}
		check()
	}

	elapsed := time.Since(start)
	ticks := c.Steps() / c.SPC()
	t.Logf("%d components. %d steps in %v. %d clock ticks => %.2f Hz", c.Size(), c.Steps(), elapsed, ticks, float64(ticks)/(float64(elapsed)/float64(time.Second)))
}
