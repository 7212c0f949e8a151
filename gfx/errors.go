// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"github.com/pkg/errors"
)

// package errors
var (
	// ErrFailure is the result of any operation that could not produce
	// a usable object. The object must not be used after it.
	ErrFailure = errors.New("gfx: failure")

	// ErrBackendNotAvailable is returned when the requested backend is not registered.
	ErrBackendNotAvailable = errors.New("gfx: backend not available")

	// ErrNotInitialized is returned when device level operations
	// are called before RenderInit.
	ErrNotInitialized = errors.New("gfx: render not initialized")

	// ErrInvalidHandle is returned for empty handles or handles
	// that were created by a different backend.
	ErrInvalidHandle = errors.New("gfx: invalid handle")
)

// failure matches ErrFailure and carries the error that caused it.
type failure struct {
	cause error
}

func (f *failure) Error() string {
	return ErrFailure.Error() + ": " + f.cause.Error()
}

// Is makes errors.Is(err, ErrFailure) hold.
func (f *failure) Is(target error) bool {
	return target == ErrFailure
}

func (f *failure) Unwrap() error {
	return f.cause
}

// Cause returns the innermost cause, so errors.Cause reaches the native error.
func (f *failure) Cause() error {
	return errors.Cause(f.cause)
}

// Failuref formats an error that wraps ErrFailure.
func Failuref(format string, args ...interface{}) error {
	return &failure{cause: errors.Errorf(format, args...)}
}

// Wrapf annotates cause with a message and wraps it as a failure.
// The cause stays reachable through errors.Is, errors.As and errors.Cause.
// A nil cause returns nil.
func Wrapf(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return &failure{cause: errors.Wrapf(cause, format, args...)}
}

// IsFailure reports whether err is, or wraps, ErrFailure.
func IsFailure(err error) bool {
	return errors.Is(err, ErrFailure)
}
