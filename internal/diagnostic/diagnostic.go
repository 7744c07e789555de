// Package diagnostic defines the error kinds of lambda spec §7 and wraps
// them with github.com/pkg/errors so every failure that crosses a package
// boundary (parser, resolver, reducer, codec) carries a stack.
package diagnostic

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/go-lambda/blc/expr"
)

// Location pins a diagnostic to a source position. Line and Col are
// 1-based; File may be empty for REPL input.
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// ParseError reports invalid syntax at a known source location.
type ParseError struct {
	Loc Location
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: %s", e.Loc, e.Msg)
}

// NewParseError builds a stack-carrying ParseError.
func NewParseError(loc Location, format string, args ...any) error {
	return errors.WithStack(&ParseError{Loc: loc, Msg: fmt.Sprintf(format, args...)})
}

// UnresolvedIdentifier reports a free identifier with no global binding
// at the time it was demanded by the reducer.
type UnresolvedIdentifier struct {
	Name string
	Loc  Location
}

func (e *UnresolvedIdentifier) Error() string {
	return fmt.Sprintf("%s: unresolved identifier %q", e.Loc, e.Name)
}

// NewUnresolvedIdentifier builds a stack-carrying UnresolvedIdentifier.
func NewUnresolvedIdentifier(name string, loc Location) error {
	return errors.WithStack(&UnresolvedIdentifier{Name: name, Loc: loc})
}

// ReductionLimitExceeded reports that the reducer's step budget ran out
// before normal form was reached. Partial carries the expression as of
// the last completed step.
type ReductionLimitExceeded struct {
	Steps   int
	Partial expr.Ref
}

func (e *ReductionLimitExceeded) Error() string {
	return fmt.Sprintf("reduction limit of %d steps exceeded", e.Steps)
}

// NewReductionLimitExceeded builds a stack-carrying ReductionLimitExceeded.
func NewReductionLimitExceeded(steps int, partial expr.Ref) error {
	return errors.WithStack(&ReductionLimitExceeded{Steps: steps, Partial: partial})
}

// MalformedBLC reports an invalid bit prefix or a premature end of stream
// while decoding.
type MalformedBLC struct {
	Reason string
	Offset int // bit offset into the stream where decoding failed
}

func (e *MalformedBLC) Error() string {
	return fmt.Sprintf("malformed BLC at bit %d: %s", e.Offset, e.Reason)
}

// NewMalformedBLC builds a stack-carrying MalformedBLC.
func NewMalformedBLC(offset int, format string, args ...any) error {
	return errors.WithStack(&MalformedBLC{Reason: fmt.Sprintf(format, args...), Offset: offset})
}

// IOError wraps a file read or stream write failure with the path that
// triggered it.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// WrapIO builds a stack-carrying IOError, or returns nil if err is nil.
func WrapIO(path string, err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&IOError{Path: path, Err: err})
}
