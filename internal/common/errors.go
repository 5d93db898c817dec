// Package common defines shared constants and sentinel errors used across
// the MedXScan client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal    = errors.New("internal error")
	ErrNotLoggedIn = errors.New("not logged in")

	// Auth errors. These are application-level outcomes, returned (never
	// panicked) so the caller can branch on them.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("an account with this email already exists")

	// Validation errors.
	ErrUnsupportedImage = errors.New("unsupported image type: expected png, jpeg or dicom")
)
