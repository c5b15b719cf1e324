package api

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a request that could not be sent or whose response
// could not be read.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: failed to send request: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s: API returned an error: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// DecodeError reports a response body that did not match the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to parse response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0 when err is not an
// HTTPError.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Message converts any client error into one line fit for display next to
// the table.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		ne *NetworkError
		he *HTTPError
		de *DecodeError
	)
	switch {
	case errors.As(err, &ne):
		return "The server could not be reached. Check your connection and try again."
	case errors.As(err, &he):
		if he.Message != "" {
			return fmt.Sprintf("The server answered %d: %s", he.StatusCode, he.Message)
		}
		return fmt.Sprintf("The server answered %d %s.", he.StatusCode, http.StatusText(he.StatusCode))
	case errors.As(err, &de):
		return "The server sent a response that could not be read."
	default:
		return err.Error()
	}
}
