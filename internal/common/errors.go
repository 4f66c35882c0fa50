// Package common defines shared constants and sentinel errors used across
// the effy client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session store errors.
	ErrInvalidToken = errors.New("invalid token")

	// Session lifecycle errors.
	ErrNotAuthenticated = errors.New("not authenticated")
)
