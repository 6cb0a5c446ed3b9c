// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrClosed is returned by the methods of a closed Target.
//
var ErrClosed = errors.New("target closed")

// MismatchError is returned by the Expect methods when a sampled signal does
// not have the expected value.
//
type MismatchError struct {
	Op     string // operation being checked
	Signal string
	Want   uint8
	Got    uint8
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s expected 0x%02X, got 0x%02X", e.Op, e.Signal, e.Want, e.Got)
}

// IsMismatch returns the MismatchError in err's chain, if any.
//
func IsMismatch(err error) (*MismatchError, bool) {
	var me *MismatchError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
