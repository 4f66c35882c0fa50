package api

// Notifier surfaces one user-visible message per event, the CLI counterpart
// of the web frontend's toast notifications. The Client emits exactly one
// Error notification per failed request; Success is used by higher layers
// for lifecycle messages ("Login successful!" and the like).
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator forces the user interface back to the login surface after a
// session teardown.
type Navigator interface {
	ToLogin()
}
