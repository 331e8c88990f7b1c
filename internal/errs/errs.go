// Package errs defines the error kinds surfaced by the table builder.
//
// Every component returns an *Error whose Kind is one of the sentinels below,
// so callers can branch with errors.Is without caring which layer failed.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrIO       = errors.New("io error")
	ErrConfig   = errors.New("config error")
	ErrTemplate = errors.New("template error")
	ErrDatabase = errors.New("database error")
	ErrFormat   = errors.New("format error")
)

// Error is a kinded error. Subject is the file path or table name the
// operation was working on.
type Error struct {
	Kind    error
	Op      string
	Subject string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Subject != "" {
		msg += " " + e.Subject
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, subject string, err error) *Error {
	return &Error{Kind: kind, Op: op, Subject: subject, Err: err}
}

func IO(op, subject string, err error) *Error {
	return newError(ErrIO, op, subject, err)
}

func Config(op, subject string, err error) *Error {
	return newError(ErrConfig, op, subject, err)
}

func Template(op, subject string, err error) *Error {
	return newError(ErrTemplate, op, subject, err)
}

func Database(op, subject string, err error) *Error {
	return newError(ErrDatabase, op, subject, err)
}

func Format(op, subject string, err error) *Error {
	return newError(ErrFormat, op, subject, err)
}

// Configf builds a config error from a format string.
func Configf(op, subject, format string, args ...any) *Error {
	return Config(op, subject, fmt.Errorf(format, args...))
}

// KindOf returns the kind sentinel of err, or nil when err is not kinded.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
