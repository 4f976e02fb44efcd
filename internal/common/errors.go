// Package common defines shared sentinel errors used across the engine.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Profile resolution errors. The two are deliberately distinct: an
	// unknown explicit id means a specific profile must be fixed, while a
	// missing default means no profile is configured at all.
	ErrProfileNotFound  = errors.New("profile not found")
	ErrNoDefaultProfile = errors.New("no default profile configured")

	// Registry errors.
	ErrAdapterNotFound = errors.New("no adapter registered for backend")

	// Optional-capability errors.
	ErrUnsupported = errors.New("operation not supported by backend")
)
