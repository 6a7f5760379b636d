// Package ragerr defines the error taxonomy shared by the ingestion and
// retrieval pipelines. Every error leaving an orchestrator carries a stable
// Kind so the transport layer can map it to a status code without string
// matching.
package ragerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnknown is the zero value; errors without a taxonomy kind.
	KindUnknown Kind = iota
	// KindValidation covers bad file types, missing filenames and exceeded limits.
	KindValidation
	// KindExtraction covers corrupt or unreadable PDFs.
	KindExtraction
	// KindEmptyContent means extraction yielded no non-whitespace text.
	KindEmptyContent
	// KindConflict means a duplicate filename.
	KindConflict
	// KindStore covers metadata store failures.
	KindStore
	// KindIndex covers vector index failures during upsert or search.
	KindIndex
	// KindGeneration means retrieval succeeded but the generation call failed.
	KindGeneration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindExtraction:
		return "extraction"
	case KindEmptyContent:
		return "empty_content"
	case KindConflict:
		return "conflict"
	case KindStore:
		return "store"
	case KindIndex:
		return "index"
	case KindGeneration:
		return "generation"
	default:
		return "unknown"
	}
}

// Error pairs a taxonomy kind with human-readable detail and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with formatted detail.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and detail to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the taxonomy kind from err, or KindUnknown if none is set.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
