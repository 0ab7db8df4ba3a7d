package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is raised (as a panic) when a domain is built from
	// an absent value. It always denotes a bug in the caller.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnreachable is raised (as a panic) when an operation reaches a
	// combination of variants that cannot be produced by the factory.
	ErrUnreachable = errors.New("unreachable variant combination")

	errPatternMatch = func(op string, vs ...interface{}) error {
		return fmt.Errorf("%w: invalid pattern match for %s: %v", ErrUnreachable, op, vs)
	}
)

func mustBeValid(v Value, ctor string) {
	if !v.IsValid() {
		panic(fmt.Errorf("%w: %s of an absent value", ErrInvalidArgument, ctor))
	}
}
