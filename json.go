package ksoap2utility

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// JSONArray is a decoded JSON array. Numbers are kept as json.Number so no precision is lost;
// nested objects and arrays decode to map[string]any and []any.
type JSONArray []any

// Len returns the number of elements.
func (a JSONArray) Len() int {
	return len(a)
}

// String returns the array encoded as compact JSON.
func (a JSONArray) String() string {
	b, err := json.Marshal([]any(a))
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}

func parseJSONArray(text string) (JSONArray, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var arr []any
	if err := dec.Decode(&arr); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &ParseError{Err: err}
	}
	if arr == nil {
		return nil, &ParseError{Err: errNotArray}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("unexpected data after JSON array")}
	}

	return JSONArray(arr), nil
}
