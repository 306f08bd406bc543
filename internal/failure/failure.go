// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package failure defines the kinds of failure the tracker's collaborators
// report, so callers can choose between aborting and continuing.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Unknown is the zero Kind; errors that are not *Error report it.
	Unknown Kind = iota
	// Fetch is a transport error or non-2xx response.
	Fetch
	// Parse is markup that does not have the expected report shape.
	Parse
	// Store is a filesystem or object storage error.
	Store
	// Decode is a persisted snapshot that is not valid JSON.
	Decode
)

func (k Kind) String() string {
	switch k {
	case Fetch:
		return "fetch failure"
	case Parse:
		return "parse failure"
	case Store:
		return "store failure"
	case Decode:
		return "decode failure"
	default:
		return "failure"
	}
}

// Error carries a Kind, the operation that failed (a URL, file name or step)
// and the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err as a failure of the given kind. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a failure from a formatted message.
func Newf(kind Kind, op string, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err's chain holds a failure of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
