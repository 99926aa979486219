package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports bad client input. Field names the offending
// parameter; Msg is safe to surface verbatim.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %q parameter", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// DataAccessError wraps a store failure. Query and Op are for internal
// diagnostics only; Error() stays generic so the template and bindings never
// leak to a client.
type DataAccessError struct {
	Op    string
	Query string
	Err   error
}

func (e DataAccessError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("data access failure in %s", e.Op)
	}
	return "data access failure"
}

func (e DataAccessError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsDataAccess(err error) bool {
	var target DataAccessError
	return errors.As(err, &target)
}
