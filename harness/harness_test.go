// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/db47h/ttsim/counter"
	"github.com/db47h/ttsim/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHarness(t *testing.T, target string) *harness.Harness {
	t.Helper()
	return newHarnessConfig(t, target, harness.DefaultConfig())
}

func newHarnessConfig(t *testing.T, target string, cfg harness.Config) *harness.Harness {
	t.Helper()
	tg, err := harness.NewTarget(target, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { tg.Close() })
	return harness.New(tg, harness.WithConfig(cfg))
}

func forTargets(t *testing.T, f func(t *testing.T, h *harness.Harness)) {
	for _, name := range harness.Targets() {
		name := name
		t.Run(name, func(t *testing.T) {
			f(t, newHarness(t, name))
		})
	}
}

func sample(t *testing.T, h *harness.Harness) harness.Sample {
	t.Helper()
	s, err := h.Sample()
	require.NoError(t, err)
	return s
}

func TestTargets(t *testing.T) {
	assert.Equal(t, []string{"gates", "model", "rtl"}, harness.Targets())
	for _, n := range harness.Targets() {
		assert.NotEmpty(t, harness.Describe(n), n)
	}
	_, err := harness.NewTarget("fpga", harness.DefaultConfig())
	assert.EqualError(t, err, `unknown target "fpga"`)
}

func TestHarness_reset(t *testing.T) {
	ctx := context.Background()
	forTargets(t, func(t *testing.T, h *harness.Harness) {
		require.NoError(t, h.SetInputs(counter.Inputs{Load: true, Data: 0x5A}))
		require.NoError(t, h.Advance(ctx, 1))
		require.NoError(t, h.ExpectCount("load", 0x5A))

		require.NoError(t, h.Reset(ctx, 0))
		assert.Equal(t, uint64(11), h.Edges())
		assert.Equal(t, uint64(1100), h.Time())
		assert.Equal(t, harness.Sample{}, sample(t, h))
		assert.Equal(t, counter.Inputs{}, h.Inputs())

		// reset is released: counting resumes.
		require.NoError(t, h.SetInputs(counter.Inputs{Enable: true, Up: true}))
		require.NoError(t, h.Advance(ctx, 2))
		require.NoError(t, h.ExpectCount("up", 2))
	})
}

func TestHarness_nextEdge(t *testing.T) {
	ctx := context.Background()
	forTargets(t, func(t *testing.T, h *harness.Harness) {
		require.NoError(t, h.Reset(ctx, 2))
		require.NoError(t, h.SetInputs(counter.Inputs{Load: true, OutputEnable: true, Data: 0x42}))
		// nothing changes until the next edge, the bus enable included.
		assert.Equal(t, harness.Sample{}, sample(t, h))
		require.NoError(t, h.Advance(ctx, 0))
		assert.Equal(t, harness.Sample{}, sample(t, h))
		require.NoError(t, h.Advance(ctx, 1))
		assert.Equal(t, harness.Sample{Count: 0x42, Bus: 0x42, Mask: 0xFF}, sample(t, h))
	})
}

func TestHarness_triState(t *testing.T) {
	ctx := context.Background()
	forTargets(t, func(t *testing.T, h *harness.Harness) {
		require.NoError(t, h.Reset(ctx, 1))
		require.NoError(t, h.SetInputs(counter.Inputs{Load: true, Data: 0x81}))
		require.NoError(t, h.Advance(ctx, 1))
		for i := 0; i < 3; i++ {
			require.NoError(t, h.SetInputs(counter.Inputs{OutputEnable: true}))
			require.NoError(t, h.Advance(ctx, 1))
			s := sample(t, h)
			v, ok := s.BusValue()
			assert.True(t, ok)
			assert.Equal(t, uint8(0x81), v)
			assert.Equal(t, "count=0x81 bus=0x81 oe=0xFF", s.String())

			require.NoError(t, h.SetInputs(counter.Inputs{}))
			require.NoError(t, h.Advance(ctx, 1))
			s = sample(t, h)
			_, ok = s.BusValue()
			assert.False(t, ok)
			assert.Equal(t, uint8(0), s.Mask)
			assert.Equal(t, "count=0x81 bus=Z oe=0x00", s.String())
			require.NoError(t, h.ExpectReleased("release"))
		}
	})
}

func TestHarness_expect(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, harness.TargetModel)
	require.NoError(t, h.Reset(ctx, 1))
	require.NoError(t, h.SetInputs(counter.Inputs{Load: true, Data: 0xA5}))
	require.NoError(t, h.Advance(ctx, 1))

	err := h.ExpectCount("up 1", 0xA6)
	require.Error(t, err)
	assert.EqualError(t, err, "up 1: uo_out expected 0xA6, got 0xA5")
	me, ok := harness.IsMismatch(err)
	require.True(t, ok)
	assert.Equal(t, &harness.MismatchError{Op: "up 1", Signal: counter.SigUOOut, Want: 0xA6, Got: 0xA5}, me)

	assert.EqualError(t, h.ExpectBus("bus", 0xA5), "bus: uio_oe expected 0xFF, got 0x00")
	require.NoError(t, h.ExpectReleased("released"))

	require.NoError(t, h.SetInputs(counter.Inputs{OutputEnable: true}))
	require.NoError(t, h.Advance(ctx, 1))
	require.NoError(t, h.ExpectBus("bus", 0xA5))
	assert.EqualError(t, h.ExpectBus("bus", 0x5A), "bus: uio_out expected 0x5A, got 0xA5")
	assert.EqualError(t, h.ExpectReleased("released"), "released: uio_oe expected 0x00, got 0xFF")

	_, ok = harness.IsMismatch(context.Canceled)
	assert.False(t, ok)
}

func TestHarness_advanceErrors(t *testing.T) {
	forTargets(t, func(t *testing.T, h *harness.Harness) {
		assert.EqualError(t, h.Advance(context.Background(), -1), "invalid edge count -1")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := h.Advance(ctx, 3)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "edge 1: context canceled", err.Error())
		assert.Zero(t, h.Edges())
	})
}

func TestSignals_errors(t *testing.T) {
	for _, name := range harness.Targets() {
		tg, err := harness.NewTarget(name, harness.DefaultConfig())
		require.NoError(t, err)
		assert.EqualError(t, tg.Drive("clk", 1), `unknown signal "clk"`, name)
		assert.EqualError(t, tg.Drive(counter.SigUOOut, 1), `signal "uo_out" is an output`, name)
		assert.EqualError(t, tg.Drive(counter.SigRstN, 2), `value 0x2 out of range for 1-bit signal "rst_n"`, name)
		assert.EqualError(t, tg.Drive(counter.SigUIIn, 0x100), `value 0x100 out of range for 8-bit signal "ui_in"`, name)
		_, err = tg.Read("uio")
		assert.EqualError(t, err, `unknown signal "uio"`, name)

		require.NoError(t, tg.Drive(counter.SigUIOIn, 0x7E))
		v, err := tg.Read(counter.SigUIOIn)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x7E), v, name)
		require.NoError(t, tg.Close())
	}
}

func TestModelTarget_powerOn(t *testing.T) {
	tg := harness.NewModelTarget()
	h := harness.New(tg)
	assert.False(t, tg.Model().Defined())

	// counting an undefined register keeps it undefined.
	require.NoError(t, h.SetInputs(counter.Inputs{Enable: true, Up: true}))
	require.NoError(t, h.Advance(context.Background(), 3))
	assert.False(t, tg.Model().Defined())

	require.NoError(t, h.Reset(context.Background(), 1))
	assert.True(t, tg.Model().Defined())
}

func TestHarness_disabled(t *testing.T) {
	ctx := context.Background()
	forTargets(t, func(t *testing.T, h *harness.Harness) {
		require.NoError(t, h.Reset(ctx, 1))
		require.NoError(t, h.SetInputs(counter.Inputs{Load: true, Data: 0x10}))
		require.NoError(t, h.SetEnable(false))
		require.NoError(t, h.Advance(ctx, 4))
		require.NoError(t, h.ExpectCount("disabled", 0))
		require.NoError(t, h.SetEnable(true))
		require.NoError(t, h.Advance(ctx, 1))
		require.NoError(t, h.ExpectCount("enabled", 0x10))
	})
}

// TestTargets_lockstep drives all targets with the same random inputs and
// checks that they agree after every edge.
//
func TestTargets_lockstep(t *testing.T) {
	for _, workers := range []int{1, 4} {
		cfg := harness.DefaultConfig()
		cfg.Workers = workers
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			lockstep(t, cfg, 500)
		})
	}
}

func lockstep(t *testing.T, cfg harness.Config, edges int) {
	ctx := context.Background()
	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	names := harness.Targets()
	hs := make([]*harness.Harness, len(names))
	for i, n := range names {
		hs[i] = newHarnessConfig(t, n, cfg)
		require.NoError(t, hs[i].Reset(ctx, 1))
	}

	for e := 0; e < edges; e++ {
		in := counter.Control(rnd.Intn(16)).Inputs(uint8(rnd.Intn(256)))
		// mostly count so that the register wanders.
		if rnd.Intn(8) != 0 {
			in.Load = false
		}
		var want harness.Sample
		for i, h := range hs {
			require.NoError(t, h.SetInputs(in))
			require.NoError(t, h.Advance(ctx, 1))
			s := sample(t, h)
			if i == 0 {
				want = s
				continue
			}
			require.Equal(t, want, s, "seed %d, edge %d, %s vs %s, inputs %v data 0x%02X",
				seed, e, names[0], names[i], in.Control(), in.Data)
		}
	}
}

func TestTargets_closed(t *testing.T) {
	ctx := context.Background()
	forTargets(t, func(t *testing.T, h *harness.Harness) {
		require.NoError(t, h.Advance(ctx, 1))
		require.NoError(t, h.Target().Close())
		require.NoError(t, h.Target().Close())

		err := h.Advance(ctx, 1)
		assert.ErrorIs(t, err, harness.ErrClosed)
		assert.Equal(t, uint64(1), h.Edges())
		_, err = h.Sample()
		assert.ErrorIs(t, err, harness.ErrClosed)
		assert.ErrorIs(t, h.SetInputs(counter.Inputs{}), harness.ErrClosed)
	})
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, harness.DefaultConfig().Validate())
	for _, td := range []struct {
		name string
		f    func(*harness.Config)
		err  string
	}{
		{"period", func(c *harness.Config) { c.Period = 0 }, "clock period must be positive"},
		{"spc", func(c *harness.Config) { c.StepsPerCycle = 8 }, "steps per cycle must be at least 16, got 8"},
		{"spc_max", func(c *harness.Config) { c.StepsPerCycle = harness.MaxStepsPerCycle + 1 }, "steps per cycle must be at most 65536, got 65537"},
		{"spc_overflow", func(c *harness.Config) { c.StepsPerCycle = ^uint(0) }, fmt.Sprintf("steps per cycle must be at most 65536, got %d", ^uint(0))},
		{"workers", func(c *harness.Config) { c.Workers = -1 }, "invalid worker count -1"},
		{"reset", func(c *harness.Config) { c.ResetEdges = 0 }, "reset must be held for at least one edge, got 0"},
	} {
		t.Run(td.name, func(t *testing.T) {
			cfg := harness.DefaultConfig()
			td.f(&cfg)
			assert.EqualError(t, cfg.Validate(), td.err)
		})
	}
}
