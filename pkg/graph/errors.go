package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the graph store and the algorithms built on it.
var (
	ErrIngestion       = errors.New("ingestion failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNodeNotFound    = errors.New("node not found")
)

// Error carries structured information about a failed graph operation.
type Error struct {
	Op      string // operation that failed (e.g. "ingest", "coefficient_distribution")
	Arg     string // offending argument, if any
	Node    uint64
	HasNode bool
	Source  string // ingestion source, if any
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.HasNode:
		return fmt.Sprintf("%s node %d: %v", e.Op, e.Node, e.Cause)
	case e.Arg != "":
		return fmt.Sprintf("%s (argument %s): %v", e.Op, e.Arg, e.Cause)
	case e.Source != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building Errors.
type ErrorBuilder struct {
	err Error
}

// NewError creates a new error builder for the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Op: op}}
}

// Node records the node the operation was about.
func (b *ErrorBuilder) Node(id uint64) *ErrorBuilder {
	b.err.Node = id
	b.err.HasNode = true
	return b
}

// Arg records the name of the offending argument.
func (b *ErrorBuilder) Arg(name string) *ErrorBuilder {
	b.err.Arg = name
	return b
}

// Source records the ingestion source.
func (b *ErrorBuilder) Source(src string) *ErrorBuilder {
	b.err.Source = src
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the built error.
func (b *ErrorBuilder) Err() error {
	e := b.err
	return &e
}

// InvalidArgument reports an argument rejected before any computation ran.
func InvalidArgument(op, arg, detail string) error {
	return NewError(op).Arg(arg).Cause(fmt.Errorf("%w: %s", ErrInvalidArgument, detail)).Err()
}

// IngestionFailure wraps an unreadable source. The previous graph state is untouched.
func IngestionFailure(source string, cause error) error {
	return NewError("ingest").Source(source).Cause(fmt.Errorf("%w: %w", ErrIngestion, cause)).Err()
}

// IsInvalidArgument reports whether err was caused by a rejected argument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsIngestionFailure reports whether err aborted an ingestion.
func IsIngestionFailure(err error) bool {
	return errors.Is(err, ErrIngestion)
}
