package api

import "errors"

// Kind classifies a normalized request failure.
type Kind string

const (
	// KindAuthentication: credentials rejected or token invalid/expired.
	// Always accompanied by session teardown and navigation to login.
	KindAuthentication Kind = "authentication"
	// KindValidation: the request payload failed server-side schema checks.
	KindValidation Kind = "validation"
	// KindNetwork: the request never completed (timeout, connectivity).
	// The session is left untouched.
	KindNetwork Kind = "network"
	// KindApplication: any other non-2xx response.
	KindApplication Kind = "application"
)

// Error is the single failure type returned by every Client call. By the
// time a caller sees it, the user has already been notified once; callers
// use it only to keep local state (e.g. re-enable a form) and must not
// surface it again or retry.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 when no response was received
	Message string
	cause   error
}

func (e *Error) Error() string {
	return string(e.Kind) + " error: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is a Client failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
