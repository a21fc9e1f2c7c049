package feed

import (
	"errors"
	"fmt"
)

// Failure markers. Every error returned by this package wraps exactly one.
var (
	ErrNetwork = errors.New("network error")
	ErrHTTP    = errors.New("http error")
	ErrParse   = errors.New("parse error")
)

// HTTPError reports a non-2xx response from the feed endpoint.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: %s returned status %d", ErrHTTP, e.URL, e.StatusCode)
}

func (e *HTTPError) Unwrap() error { return ErrHTTP }
