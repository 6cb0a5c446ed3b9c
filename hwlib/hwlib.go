// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for ttsim.
//
// Part functions document their pins and function like this:
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
// Bus pins are written name[bits]; pin 0 of a bus is the least significant bit.
//
package hwlib

import (
	"github.com/db47h/ttsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = ttsim.BusPinName(n, j)
		}
	}
	return b
}
