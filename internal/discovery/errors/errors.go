package errors

// Package errors provides sentinel errors for page discovery.
// Callers wrap them with the failing pattern or file so errors.Is keeps working.

import "errors"

var (
	// ErrInvalidPattern indicates a source or ignore glob could not be parsed.
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrGlobFailed indicates expanding a source glob against the work directory failed.
	ErrGlobFailed = errors.New("source glob failed")

	// ErrRelativePath indicates a discovered file could not be expressed relative to the project root.
	ErrRelativePath = errors.New("invalid relative path calculation")

	// ErrSiblingsFailed indicates listing the files next to an entry failed.
	ErrSiblingsFailed = errors.New("sibling listing failed")

	// ErrHookFailed indicates a user supplied path or title hook returned an error.
	ErrHookFailed = errors.New("discovery hook failed")
)
