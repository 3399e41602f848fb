package json

import (
	"errors"
	"fmt"
)

// ErrorCode is the kind of failure recorded in a Context.
type ErrorCode uint8

const (
	None ErrorCode = iota
	SyntaxError
	UnexpectedEnd
	ExpectedQuote
	ExpectedEndComment
	ExceededStaticArraySize
)

var errorNames = [...]string{
	None:                    "none",
	SyntaxError:             "syntax_error",
	UnexpectedEnd:           "unexpected_end",
	ExpectedQuote:           "expected_quote",
	ExpectedEndComment:      "expected_end_comment",
	ExceededStaticArraySize: "exceeded_static_array_size",
}

func (c ErrorCode) String() string {
	if int(c) < len(errorNames) {
		return errorNames[c]
	}
	return fmt.Sprintf("error_code(%d)", uint8(c))
}

var (
	ErrSyntax                  = errors.New("syntax error")
	ErrUnexpectedEnd           = errors.New("unexpected end of input")
	ErrExpectedQuote           = errors.New("expected quote")
	ErrExpectedEndComment      = errors.New("expected end of comment")
	ErrExceededStaticArraySize = errors.New("exceeded static array size")
)

func (c ErrorCode) sentinel() error {
	switch c {
	case SyntaxError:
		return ErrSyntax
	case UnexpectedEnd:
		return ErrUnexpectedEnd
	case ExpectedQuote:
		return ErrExpectedQuote
	case ExpectedEndComment:
		return ErrExpectedEndComment
	case ExceededStaticArraySize:
		return ErrExceededStaticArraySize
	}
	return nil
}

// Error is the frozen failure of one parse or serialize operation.
type Error struct {
	Code   ErrorCode
	Offset int
	File   string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Offset, msg)
	}
	return fmt.Sprintf("offset %d: %s", e.Offset, msg)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Code.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Context holds the error slot of a single parse or serialize operation.
// The first recorded failure wins; later calls to Fail are ignored.
// A Context must not be shared between concurrent operations.
type Context struct {
	// File optionally names the source for diagnostics.
	File string

	code   ErrorCode
	offset int
	cause  error
}

// Failed reports whether an error has been recorded.
func (c *Context) Failed() bool {
	return c.code != None
}

func (c *Context) Code() ErrorCode {
	return c.code
}

// Offset is the byte offset at which the recorded error was raised.
func (c *Context) Offset() int {
	return c.offset
}

// Fail records code at offset unless an error is already set.
func (c *Context) Fail(code ErrorCode, offset int) {
	c.FailWith(code, offset, nil)
}

// FailWith is Fail with an underlying cause, used by value codecs.
func (c *Context) FailWith(code ErrorCode, offset int, cause error) {
	if c.code != None || code == None {
		return
	}
	c.code = code
	c.offset = offset
	c.cause = cause
}

// Err returns nil or the recorded failure as an *Error.
func (c *Context) Err() error {
	if c.code == None {
		return nil
	}
	return &Error{Code: c.code, Offset: c.offset, File: c.File, Cause: c.cause}
}

// Reset clears the error slot so the Context can serve a new operation.
func (c *Context) Reset() {
	c.code = None
	c.offset = 0
	c.cause = nil
}
