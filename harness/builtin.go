// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"embed"
	"path"
	"sort"

	"github.com/pkg/errors"
)

//go:embed scenarios/*.yaml
var builtinFS embed.FS

// Builtin returns the embedded scenarios, sorted by file name.
//
func Builtin() ([]*Scenario, error) {
	files, err := builtinFS.ReadDir("scenarios")
	if err != nil {
		return nil, errors.Wrap(err, "builtin scenarios")
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name())
	}
	sort.Strings(names)

	scs := make([]*Scenario, 0, len(names))
	for _, n := range names {
		data, err := builtinFS.ReadFile(path.Join("scenarios", n))
		if err != nil {
			return nil, errors.Wrap(err, n)
		}
		sc, err := ParseScenario(data)
		if err != nil {
			return nil, errors.Wrap(err, n)
		}
		scs = append(scs, sc)
	}
	return scs, nil
}

// Lookup returns the builtin scenario with the given name.
//
func Lookup(name string) (*Scenario, error) {
	scs, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, sc := range scs {
		if sc.Name == name {
			return sc, nil
		}
	}
	return nil, errors.Errorf("no builtin scenario %q", name)
}
