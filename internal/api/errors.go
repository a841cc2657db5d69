package api

import (
	"errors"
	"fmt"
)

// ErrFetchFailed matches every error returned by the client
var ErrFetchFailed = errors.New("fetch failed")

// FetchError describes a failed API call: a transport error, a non-2xx status
// or an undecodable body. Callers do not branch on the status code.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetchFailed) true for any FetchError
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
