package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrFormat indicates processed content has an unrecognized shape
	ErrFormat = errors.New("unrecognized content format")

	// ErrInvalidResponse indicates a remote service returned an unexpected shape
	ErrInvalidResponse = errors.New("invalid response")

	// ErrUnsupportedType indicates no extractor is registered for the file type
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates a remote service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)
