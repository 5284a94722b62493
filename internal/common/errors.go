// Package common contains shared constants and sentinel errors used across
// the client components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrNoSession    = errors.New("no stored session")

	// upload validation errors (per-file, non-fatal to the batch)
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")

	// upload flow errors
	ErrEmptySelection   = errors.New("no files selected")
	ErrUploadInProgress = errors.New("upload already in progress")
)
