// Package apperr holds the sentinel errors shared across packages.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrMalformedMetadata = errors.New("malformed metadata")
	ErrIO                = errors.New("io error")
)
