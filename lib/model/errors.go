package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SourceReadError means a raw input could not be read or parsed. It aborts the run.
type SourceReadError struct {
	Source string
	Path   string
	Err    error
}

func NewSourceReadError(source string, path string, err error) *SourceReadError {
	return &SourceReadError{Source: source, Path: path, Err: err}
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("error reading %v from %v: %v", e.Source, e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// ReferentialIntegrityError means the area hierarchy cannot be built consistently.
type ReferentialIntegrityError struct {
	AreaID   string
	ParentID string
	Reason   string
}

func (e *ReferentialIntegrityError) Error() string {
	if e.ParentID == "" {
		return fmt.Sprintf("area %v: %v", e.AreaID, e.Reason)
	}
	return fmt.Sprintf("area %v (parent %v): %v", e.AreaID, e.ParentID, e.Reason)
}

// IsFatal reports whether err must stop the pipeline before anything is written.
func IsFatal(err error) bool {
	var sre *SourceReadError
	var rie *ReferentialIntegrityError
	return errors.As(err, &sre) || errors.As(err, &rie)
}

// IntegrityErrors groups every invalid area found while building the hierarchy.
type IntegrityErrors []*ReferentialIntegrityError

func (es IntegrityErrors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}

	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%v invalid areas: %v", len(es), strings.Join(msgs, "; "))
}

func (es IntegrityErrors) Unwrap() []error {
	result := make([]error, 0, len(es))
	for _, e := range es {
		result = append(result, e)
	}
	return result
}
