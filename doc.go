// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package ttsim provides a naive clocked hardware simulator, the parts needed to
build a small tiny-tapeout style design with it, and a verification harness
that drives such a design one clock edge at a time.

The root package is the simulation kernel. A Circuit holds two frames of wire
states; every step, each component reads the current frame and writes the next
one, then the frames are swapped. A built-in clock wire ("clk") rises every
stepsPerCycle steps. Clocked components latch their inputs in the step where
AtTick reports true.

Parts are described by a PartSpec and composed into bigger parts with Chip,
using connection strings like "a=x, b[0..7]=bus[0..7]". Package hwlib provides
basic gates, adders, multiplexers and flip-flops; package counter implements
the 8-bit up/down counter under test; package harness drives it.
*/
package ttsim
