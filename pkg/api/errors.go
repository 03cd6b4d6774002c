package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provisioning failures. Every kind is fatal.
type ErrorKind string

const (
	KindEnvironment ErrorKind = "environment"
	KindValidation  ErrorKind = "validation"
	KindIO          ErrorKind = "io"
	KindToolFailure ErrorKind = "tool-failure"
)

// Error is a classified provisioning failure.
type Error struct {
	Kind  ErrorKind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// EnvironmentError reports an unmet precondition (non-empty directory, missing tool, unusable input).
func EnvironmentError(msg string, cause error) error {
	return &Error{Kind: KindEnvironment, Msg: msg, Cause: cause}
}

// ValidationError reports a rejected remote check, such as an invalid license key.
func ValidationError(msg string, cause error) error {
	return &Error{Kind: KindValidation, Msg: msg, Cause: cause}
}

// IOError reports a file that could not be read or written.
func IOError(msg string, cause error) error {
	return &Error{Kind: KindIO, Msg: msg, Cause: cause}
}

// ToolFailure reports an external command that terminated abnormally.
func ToolFailure(msg string, cause error) error {
	return &Error{Kind: KindToolFailure, Msg: msg, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
