package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/effyhq/effy-cli/internal/client/session"
	"github.com/effyhq/effy-cli/internal/logging"
)

// ---- helpers ----

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// recorder captures notifications and navigations for assertions.
type recorder struct {
	successes   []string
	errors      []string
	navigations int
}

func (r *recorder) Success(message string) { r.successes = append(r.successes, message) }
func (r *recorder) Error(message string)   { r.errors = append(r.errors, message) }
func (r *recorder) ToLogin()               { r.navigations++ }

func newTestClient(t *testing.T, url string) (*Client, session.Store, *recorder) {
	t.Helper()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "token"))
	rec := &recorder{}
	c := New(url, 0, store, rec, rec, nopLogger())
	return c, store, rec
}

// ---- pre-send step ----

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, store, _ := newTestClient(t, srv.URL)
	require.NoError(t, store.SetToken("tok123"))

	require.NoError(t, c.Get(context.Background(), "/users/me", nil))
	require.Equal(t, "Bearer tok123", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var sawAuthHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, _, _ := newTestClient(t, srv.URL)

	require.NoError(t, c.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c"}, nil))
	require.False(t, sawAuthHeader)
}

// ---- success path ----

func TestClient_DecodesPayloadDirectly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","full_name":"Admin"}`))
	}))
	t.Cleanup(srv.Close)

	c, _, rec := newTestClient(t, srv.URL)

	var out struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
	}
	require.NoError(t, c.Get(context.Background(), "/users/me", &out))
	require.Equal(t, "u1", out.ID)
	require.Equal(t, "Admin", out.FullName)
	require.Empty(t, rec.errors)
	require.Zero(t, rec.navigations)
}

// ---- authentication failures ----

func TestClient_TeardownOn401And403(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c, store, rec := newTestClient(t, srv.URL)
		require.NoError(t, store.SetToken("tok123"))

		err := c.Get(context.Background(), "/documents", nil)
		require.Error(t, err)
		require.True(t, IsKind(err, KindAuthentication))

		require.Equal(t, "", store.GetToken())
		require.Equal(t, 1, rec.navigations)
		require.Equal(t, []string{"Session expired. Please login again."}, rec.errors)

		srv.Close()
	}
}

// ---- error normalization ----

func TestClient_StringDetailSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Document not found"}`))
	}))
	t.Cleanup(srv.Close)

	c, _, rec := newTestClient(t, srv.URL)

	err := c.Get(context.Background(), "/documents/nope", nil)
	require.True(t, IsKind(err, KindApplication))
	require.Equal(t, []string{"Document not found"}, rec.errors)
}

func TestClient_ValidationListSurfacesFirstMessageOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"field X required","type":"value_error"},{"loc":["body","name"],"msg":"field Y invalid","type":"value_error"}]}`))
	}))
	t.Cleanup(srv.Close)

	c, _, rec := newTestClient(t, srv.URL)

	err := c.Post(context.Background(), "/auth/register", map[string]string{}, nil)
	require.True(t, IsKind(err, KindValidation))
	require.Equal(t, []string{"field X required"}, rec.errors)
}

func TestClient_NoDetailFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	t.Cleanup(srv.Close)

	c, _, rec := newTestClient(t, srv.URL)

	err := c.Delete(context.Background(), "/documents/d1", nil)
	require.True(t, IsKind(err, KindApplication))
	require.Equal(t, []string{"An error occurred. Please try again."}, rec.errors)
}

func TestClient_TransportFailureLeavesSessionUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, store, rec := newTestClient(t, srv.URL)
	require.NoError(t, store.SetToken("tok123"))

	err := c.Get(context.Background(), "/users/me", nil)
	require.True(t, IsKind(err, KindNetwork))
	require.Equal(t, []string{"An error occurred. Please try again."}, rec.errors)
	require.Zero(t, rec.navigations)

	// A network error is not proof the session is invalid.
	require.Equal(t, "tok123", store.GetToken())
}

func TestClient_ExactlyOneNotificationPerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"bad request"}`))
	}))
	t.Cleanup(srv.Close)

	c, _, rec := newTestClient(t, srv.URL)

	_ = c.Post(context.Background(), "/documents", map[string]string{}, nil)
	_ = c.Put(context.Background(), "/documents/d1", map[string]string{}, nil)
	require.Len(t, rec.errors, 2)
}

// ---- upload variant ----

func TestClient_UploadSendsMultipart(t *testing.T) {
	var gotFile, gotTitle, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		gotFile = string(data)
		gotTitle = r.FormValue("title")

		w.Write([]byte(`{"id":"d1"}`))
	}))
	t.Cleanup(srv.Close)

	c, store, _ := newTestClient(t, srv.URL)
	require.NoError(t, store.SetToken("tok123"))

	var out struct {
		ID string `json:"id"`
	}
	err := c.Upload(context.Background(), "/documents/upload", "file", "rfp.pdf",
		strings.NewReader("pdf-bytes"), map[string]string{"title": "RFP"}, &out)
	require.NoError(t, err)
	require.Equal(t, "pdf-bytes", gotFile)
	require.Equal(t, "RFP", gotTitle)
	require.Equal(t, "Bearer tok123", gotAuth)
	require.Equal(t, "d1", out.ID)
}
