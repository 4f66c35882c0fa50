package services

import (
	"context"
	"fmt"

	"github.com/effyhq/effy-cli/internal/client/api"
	"github.com/effyhq/effy-cli/internal/client/models"
	"github.com/effyhq/effy-cli/internal/client/session"
	"github.com/effyhq/effy-cli/internal/logging"
)

// State is the auth session lifecycle phase.
type State string

const (
	// StateBootstrapping: checking for a persisted token at startup.
	StateBootstrapping State = "bootstrapping"
	// StateAnonymous: no valid session.
	StateAnonymous State = "anonymous"
	// StateAuthenticated: valid session with a loaded user.
	StateAuthenticated State = "authenticated"
)

// AuthService is the session controller for the client.
//
// Contract:
//   - Bootstrap: restore a session from a persisted token, validating it
//     against the server. No token means no network call is made.
//   - Login / Register: establish a session; on success the token is
//     persisted and the user cached.
//   - Logout: unconditional local teardown, no server round-trip.
//   - UpdateProfile: replace the cached user with the server's returned
//     representation; on failure the prior user is untouched.
//   - State / CurrentUser / Loading: the read surface feature code keys
//     rendering decisions on.
//
// Errors from the underlying client are propagated unchanged; the user has
// already been notified once by the request pipeline, so callers must not
// report them a second time.
type AuthService interface {
	Bootstrap(ctx context.Context) State
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, payload models.Registration) (*models.User, error)
	Logout()
	UpdateProfile(ctx context.Context, fields models.ProfileUpdate) (*models.User, error)
	State() State
	CurrentUser() *models.User
	Loading() bool
}

// authService is the concrete AuthService. All its state is owned by the
// single UI goroutine; mutation never happens concurrently, so there is no
// locking. The persisted token is the only shared resource and it is
// re-read from the store on every state read, which is how a teardown
// performed inside the request pipeline (or by another process) is observed.
type authService struct {
	api      Caller
	store    session.Store
	notifier api.Notifier
	log      logging.Logger

	state State
	user  *models.User
}

// NewAuthService constructs the controller in the Bootstrapping state.
func NewAuthService(caller Caller, store session.Store, notifier api.Notifier, log logging.Logger) AuthService {
	return &authService{
		api:      caller,
		store:    store,
		notifier: notifier,
		log:      log,
		state:    StateBootstrapping,
	}
}

// Bootstrap restores the session from a persisted token. Without a token it
// settles Anonymous immediately, making no network call. With a token it
// validates via GET /users/me; on any failure the token is cleared, since an
// unvalidatable token must not be retried blindly.
func (a *authService) Bootstrap(ctx context.Context) State {
	if a.store.GetToken() == "" {
		a.drop()
		return a.state
	}

	var user models.User
	if err := a.api.Get(ctx, "/users/me", &user); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
		if err := a.store.ClearToken(); err != nil {
			a.log.Error(ctx, "clearing token failed", "error", err)
		}
		a.drop()
		return a.state
	}

	a.user = &user
	a.state = StateAuthenticated
	a.log.Info(ctx, "session restored", "user", user.Email)
	return a.state
}

// Login authenticates with email/password. On failure the state remains
// Anonymous and the error is propagated as-is (the pipeline has already
// surfaced it to the user).
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.AuthResponse
	err := a.api.Post(ctx, "/auth/login", models.Credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	return a.establish(ctx, resp, "Login successful!")
}

// Register creates an account and establishes the session from the same
// response envelope as Login.
func (a *authService) Register(ctx context.Context, payload models.Registration) (*models.User, error) {
	var resp models.AuthResponse
	if err := a.api.Post(ctx, "/auth/register", payload, &resp); err != nil {
		return nil, err
	}

	return a.establish(ctx, resp, "Registration successful!")
}

// establish persists the token and caches the user from an auth envelope.
func (a *authService) establish(ctx context.Context, resp models.AuthResponse, success string) (*models.User, error) {
	if err := a.store.SetToken(resp.AccessToken); err != nil {
		// Malformed envelope (empty token) or unwritable store. The request
		// pipeline saw a 2xx, so this failure is reported here, once.
		a.log.Error(ctx, "persisting token failed", "error", err)
		a.notifier.Error("An error occurred. Please try again.")
		return nil, fmt.Errorf("persisting token: %w", err)
	}

	user := resp.User
	a.user = &user
	a.state = StateAuthenticated
	a.notifier.Success(success)
	return a.user, nil
}

// Logout tears the session down locally. It never fails and needs no server
// round-trip; the bearer token simply stops being presented.
func (a *authService) Logout() {
	if err := a.store.ClearToken(); err != nil {
		a.log.Error(context.Background(), "clearing token failed", "error", err)
	}
	a.drop()
	a.notifier.Success("Logged out successfully!")
}

// UpdateProfile sends partial profile fields and adopts the server's
// returned user. On failure the cached user is left untouched and no second
// notification is emitted.
func (a *authService) UpdateProfile(ctx context.Context, fields models.ProfileUpdate) (*models.User, error) {
	var updated models.User
	if err := a.api.Put(ctx, "/users/me", fields, &updated); err != nil {
		return nil, err
	}

	a.user = &updated
	a.notifier.Success("Profile updated successfully!")
	return a.user, nil
}

// State reports the current lifecycle phase. An Authenticated session whose
// token has since been cleared (teardown inside the pipeline, logout from
// another process) drops to Anonymous here, on the next read.
func (a *authService) State() State {
	if a.state == StateAuthenticated && a.store.GetToken() == "" {
		a.drop()
	}
	return a.state
}

// CurrentUser returns the cached user, or nil when not authenticated.
func (a *authService) CurrentUser() *models.User {
	if a.State() != StateAuthenticated {
		return nil
	}
	return a.user
}

// Loading reports whether the controller is still bootstrapping.
func (a *authService) Loading() bool {
	return a.state == StateBootstrapping
}

func (a *authService) drop() {
	a.user = nil
	a.state = StateAnonymous
}
