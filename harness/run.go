// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Event is a trace entry, recorded after each scenario step.
//
type Event struct {
	Seq    int    `json:"seq"`
	Time   uint64 `json:"time_ns"`
	Op     string `json:"op"`
	Detail string `json:"detail"`
	Sample Sample `json:"sample"`
}

// Result is the outcome of a scenario run.
//
type Result struct {
	Name    string  `json:"name"`
	RunID   string  `json:"run_id"`
	Target  string  `json:"target"`
	Passed  bool    `json:"passed"`
	Failure string  `json:"failure,omitempty"`
	Edges   uint64  `json:"edges"`
	Trace   []Event `json:"trace"`
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func expectDetail(e *ExpectStep) string {
	var parts []string
	if e.Count != nil {
		parts = append(parts, fmt.Sprintf("count=0x%02X", *e.Count))
	}
	if e.Bus != nil {
		parts = append(parts, fmt.Sprintf("bus=0x%02X", *e.Bus))
	}
	if e.Released {
		parts = append(parts, "bus=Z")
	}
	return e.Op + " " + strings.Join(parts, " ")
}

func (h *Harness) expect(e *ExpectStep) error {
	if e.Count != nil {
		if err := h.ExpectCount(e.Op, *e.Count); err != nil {
			return err
		}
	}
	if e.Bus != nil {
		if err := h.ExpectBus(e.Op, *e.Bus); err != nil {
			return err
		}
	}
	if e.Released {
		return h.ExpectReleased(e.Op)
	}
	return nil
}

// Run executes the steps of sc once against h. A mismatch stops the scenario:
// the returned Result is marked as failed and err is nil. Any other error
// aborts the run and is returned along with the partial result.
//
func Run(ctx context.Context, h *Harness, sc *Scenario) (*Result, error) {
	res := &Result{
		Name:   sc.Name,
		RunID:  newRunID(),
		Target: h.t.Name(),
		Passed: true,
	}
	log := h.log.With("scenario", sc.Name, "run_id", res.RunID)
	log.Info("scenario start")

	for i := range sc.Steps {
		st := &sc.Steps[i]
		var (
			detail string
			err    error
		)
		switch {
		case st.Reset != nil:
			n := *st.Reset
			if n == 0 {
				n = h.cfg.ResetEdges
			}
			detail = fmt.Sprintf("edges=%d", n)
			err = h.Reset(ctx, n)
		case st.Set != nil:
			in := st.Set.Inputs()
			detail = fmt.Sprintf("%v data=0x%02X", in.Control(), in.Data)
			err = h.SetInputs(in)
		case st.Advance != nil:
			detail = fmt.Sprintf("edges=%d", *st.Advance)
			err = h.Advance(ctx, *st.Advance)
		case st.Expect != nil:
			detail = expectDetail(st.Expect)
			err = h.expect(st.Expect)
		default:
			err = errors.New("empty step")
		}

		var failed *MismatchError
		if err != nil {
			var ok bool
			if failed, ok = IsMismatch(err); !ok {
				res.Passed = false
				res.Failure = err.Error()
				res.Edges = h.edges
				return res, errors.Wrapf(err, "%s: step %d", sc.Name, i+1)
			}
			detail += " FAIL"
		}
		s, serr := h.Sample()
		if serr != nil {
			return res, errors.Wrapf(serr, "%s: step %d", sc.Name, i+1)
		}
		res.Trace = append(res.Trace, Event{
			Seq:    i + 1,
			Time:   h.Time(),
			Op:     st.Op(),
			Detail: detail,
			Sample: s,
		})
		if failed != nil {
			res.Passed = false
			res.Failure = failed.Error()
			break
		}
	}
	res.Edges = h.edges
	log.Info("scenario done", "passed", res.Passed, "edges", res.Edges)
	return res, nil
}

// RunTarget creates a target of the given kind, configured with base and the
// scenario's overrides, and runs sc on it.
//
func RunTarget(ctx context.Context, target string, base Config, sc *Scenario, opts ...Option) (*Result, error) {
	cfg := sc.Config(base)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := NewTarget(target, cfg)
	if err != nil {
		return nil, err
	}
	defer t.Close()
	return Run(ctx, New(t, append(opts, WithConfig(cfg))...), sc)
}

// WriteTrace writes the trace of res in a stable text form. Run IDs are left
// out so that traces of different runs and targets can be compared.
//
func WriteTrace(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "scenario %s\n", res.Name); err != nil {
		return err
	}
	for _, e := range res.Trace {
		if _, err := fmt.Fprintf(w, "%03d %6dns %-7s %-32s %v\n", e.Seq, e.Time, e.Op, e.Detail, e.Sample); err != nil {
			return err
		}
	}
	status := "PASS"
	if !res.Passed {
		status = "FAIL " + res.Failure
	}
	_, err := fmt.Fprintf(w, "%s after %d edges\n", status, res.Edges)
	return err
}
