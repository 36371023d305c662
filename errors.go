package main

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed matches every error produced by a failed search fetch.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrClosed is returned by Dispatch once the gallery loop has stopped.
	ErrClosed = errors.New("gallery closed")
)

// HTTPError is returned when a search API answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// FetchError wraps the cause of a failed fetch with the fetch it belonged to.
type FetchError struct {
	Source string
	Query  string
	Page   int
	Err    error
}

func (e *FetchError) Error() string {
	return e.Source + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
