package service

import (
	"errors"
	"fmt"
)

// ExternalDependencyError reports a failure in a collaborator outside the core
// (model server, vision API, image storage). Domain input never produces one.
type ExternalDependencyError struct {
	Dependency string
	Op         string
	Err        error
}

func (e *ExternalDependencyError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Dependency, e.Op, e.Err)
}

func (e *ExternalDependencyError) Unwrap() error {
	return e.Err
}

// NewExternalDependencyError wraps err, returning nil for a nil err
func NewExternalDependencyError(dependency, op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *ExternalDependencyError
	if errors.As(err, &existing) {
		return err
	}
	return &ExternalDependencyError{Dependency: dependency, Op: op, Err: err}
}

// IsExternalDependencyError reports whether err was caused by an external collaborator
func IsExternalDependencyError(err error) bool {
	var target *ExternalDependencyError
	return errors.As(err, &target)
}
