// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"bytes"
	"os"

	"github.com/db47h/ttsim/counter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scenario is a sequence of harness operations with expected results.
//
//	name: reference
//	clock_period: 100
//	steps:
//	  - reset: 10
//	  - set: {load: true, data: 0xA5}
//	  - advance: 1
//	  - expect: {op: load, count: 0xA5}
//
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// ClockPeriod overrides Config.Period when non-zero.
	ClockPeriod uint64 `yaml:"clock_period,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// A Step holds exactly one operation.
//
type Step struct {
	// Reset holds reset for the given number of edges, 0 for the default.
	Reset   *int        `yaml:"reset,omitempty"`
	Set     *SetStep    `yaml:"set,omitempty"`
	Advance *int        `yaml:"advance,omitempty"`
	Expect  *ExpectStep `yaml:"expect,omitempty"`
}

// SetStep is the argument of a set step. Omitted fields are low.
//
type SetStep struct {
	Enable       bool  `yaml:"enable,omitempty"`
	Up           bool  `yaml:"up,omitempty"`
	Load         bool  `yaml:"load,omitempty"`
	OutputEnable bool  `yaml:"output_enable,omitempty"`
	Data         uint8 `yaml:"data,omitempty"`
}

// Inputs converts s to counter inputs.
//
func (s *SetStep) Inputs() counter.Inputs {
	return counter.Inputs{
		Enable:       s.Enable,
		Up:           s.Up,
		Load:         s.Load,
		OutputEnable: s.OutputEnable,
		Data:         s.Data,
	}
}

// ExpectStep is the argument of an expect step. At least one check must be
// given; Bus and Released are mutually exclusive.
//
type ExpectStep struct {
	Op       string `yaml:"op"`
	Count    *uint8 `yaml:"count,omitempty"`
	Bus      *uint8 `yaml:"bus,omitempty"`
	Released bool   `yaml:"released,omitempty"`
}

// Op returns the operation name of the step.
//
func (s *Step) Op() string {
	switch {
	case s.Reset != nil:
		return "reset"
	case s.Set != nil:
		return "set"
	case s.Advance != nil:
		return "advance"
	case s.Expect != nil:
		return "expect"
	}
	return ""
}

func (s *Step) validate() error {
	n := 0
	for _, set := range [...]bool{s.Reset != nil, s.Set != nil, s.Advance != nil, s.Expect != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return errors.Errorf("step must have exactly one of reset, set, advance or expect, got %d", n)
	}
	switch {
	case s.Reset != nil && *s.Reset < 0:
		return errors.Errorf("invalid reset length %d", *s.Reset)
	case s.Advance != nil && *s.Advance < 1:
		return errors.Errorf("invalid edge count %d", *s.Advance)
	case s.Expect != nil:
		e := s.Expect
		if e.Op == "" {
			return errors.New("expect: op is required")
		}
		if e.Count == nil && e.Bus == nil && !e.Released {
			return errors.Errorf("expect %s: nothing to check", e.Op)
		}
		if e.Bus != nil && e.Released {
			return errors.Errorf("expect %s: bus and released are mutually exclusive", e.Op)
		}
	}
	return nil
}

// Validate checks that sc is well formed.
//
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return errors.New("name is required")
	}
	if len(sc.Steps) == 0 {
		return errors.Errorf("%s: no steps", sc.Name)
	}
	for i := range sc.Steps {
		if err := sc.Steps[i].validate(); err != nil {
			return errors.Wrapf(err, "%s: step %d", sc.Name, i+1)
		}
	}
	return nil
}

// Config returns base with the scenario's overrides applied.
//
func (sc *Scenario) Config(base Config) Config {
	if sc.ClockPeriod != 0 {
		base.Period = sc.ClockPeriod
	}
	return base
}

// ParseScenario decodes and validates a YAML scenario. Unknown fields are
// rejected.
//
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	return &sc, nil
}

// LoadScenario reads a YAML scenario file.
//
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return sc, nil
}
