package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/effyhq/effy-cli/internal/client/api"
	"github.com/effyhq/effy-cli/internal/client/models"
	"github.com/effyhq/effy-cli/internal/client/session"
)

// End-to-end session lifecycle scenarios running the controller against the
// real request pipeline and a mock backend.

type scenarioEnv struct {
	auth   AuthService
	client *api.Client
	store  session.Store
	rec    *recorder
}

func newScenarioEnv(t *testing.T, handler http.Handler) *scenarioEnv {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := newTestStore(t)
	rec := &recorder{}
	client := api.New(srv.URL, 0, store, rec, rec, nopLogger())
	return &scenarioEnv{
		auth:   NewAuthService(client, store, rec, nopLogger()),
		client: client,
		store:  store,
		rec:    rec,
	}
}

func TestScenario_SuccessfulLogin(t *testing.T) {
	env := newScenarioEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "admin@company.com", creds.Email)
		require.Equal(t, "password", creds.Password)

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok123",
			"user":         map[string]any{"id": "u1", "full_name": "Admin"},
		})
	}))
	env.auth.Bootstrap(context.Background())

	user, err := env.auth.Login(context.Background(), "admin@company.com", "password")
	require.NoError(t, err)

	require.Equal(t, "tok123", env.store.GetToken())
	require.Equal(t, StateAuthenticated, env.auth.State())
	require.Equal(t, "Admin", user.FullName)
}

func TestScenario_ExpiredSessionDuringUse(t *testing.T) {
	loggedIn := true
	env := newScenarioEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok123",
				"user":         map[string]any{"id": "u1", "full_name": "Admin"},
			})
		case loggedIn:
			json.NewEncoder(w).Encode(map[string]any{"id": "u1", "full_name": "Admin"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	env.auth.Bootstrap(context.Background())

	_, err := env.auth.Login(context.Background(), "admin@company.com", "password")
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, env.auth.State())

	// The server starts rejecting the token mid-session.
	loggedIn = false

	var me models.User
	err = env.client.Get(context.Background(), "/users/me", &me)
	require.Error(t, err)
	require.True(t, api.IsKind(err, api.KindAuthentication))

	require.Equal(t, "", env.store.GetToken())
	require.Equal(t, StateAnonymous, env.auth.State())
	require.Equal(t, 1, env.rec.navigations)
}

func TestScenario_ProfileUpdateFailurePreservesUser(t *testing.T) {
	env := newScenarioEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok123",
				"user":         map[string]any{"id": "u1", "full_name": "Admin"},
			})
		case "/users/me":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":[{"loc":["body","full_name"],"msg":"full_name must not be empty","type":"value_error"}]}`))
		}
	}))
	env.auth.Bootstrap(context.Background())

	_, err := env.auth.Login(context.Background(), "admin@company.com", "password")
	require.NoError(t, err)

	empty := ""
	_, err = env.auth.UpdateProfile(context.Background(), models.ProfileUpdate{FullName: &empty})
	require.Error(t, err)
	require.True(t, api.IsKind(err, api.KindValidation))

	// Prior user retained, exactly one failure notification.
	require.Equal(t, "Admin", env.auth.CurrentUser().FullName)
	require.Equal(t, []string{"full_name must not be empty"}, env.rec.errors)
}
