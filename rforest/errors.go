package rforest

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidInput is wrapped by every error caused by malformed training
// data or out-of-range parameters.
var ErrInvalidInput = errors.New("invalid input")

// An UnknownValueError is returned when a tree reaches a branch for which
// the choices have no usable value.
type UnknownValueError struct {
	Attr  string
	Value string

	// Missing is true if the attribute was absent from the choices.
	Missing bool
}

func (u *UnknownValueError) Error() string {
	if u.Missing {
		return fmt.Sprintf("no value for attribute %s", u.Attr)
	}
	return fmt.Sprintf("unknown value %s for attribute %s", u.Value, u.Attr)
}
