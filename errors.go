package ksoap2utility

import (
	"errors"
	"strings"
)

// parseFailurePrefix tags error records produced by a response that is not a JSON array.
const parseFailurePrefix = "json parse failure: "

var errNotArray = errors.New("response is not a JSON array")

// ErrorRecord is the note kept for a single failed call.
type ErrorRecord struct {
	Message string
}

// ParseError reports that a response was received but could not be parsed as a JSON array.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return parseFailurePrefix + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseFailure reports whether an error record was produced by a JSON parse failure
// rather than by the transport.
func (r ErrorRecord) IsParseFailure() bool {
	return strings.HasPrefix(r.Message, parseFailurePrefix)
}
