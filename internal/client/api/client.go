// Package api is the single choke point for all outbound calls to the
// effyDOC backend. Every request gets the bearer token attached from the
// session store; every failure is normalized into one user-facing
// notification, and an authentication failure additionally tears the
// session down and forces navigation to login. Feature code never talks
// to the network directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/effyhq/effy-cli/internal/client/session"
	"github.com/effyhq/effy-cli/internal/common"
	"github.com/effyhq/effy-cli/internal/logging"
)

const (
	// DefaultTimeout bounds every request; on expiry the call fails as a
	// network error. There is no retry policy.
	DefaultTimeout = 30 * time.Second

	msgSessionExpired = "Session expired. Please login again."
	msgGeneric        = "An error occurred. Please try again."
)

// Client issues HTTP requests against the backend API.
//
// All collaborators are constructor-injected: the session store supplying
// the token, the notifier receiving the one-per-failure message, and the
// navigator invoked on session teardown. The three side effects (notify,
// teardown, navigate) happen only inside the post-receive step here.
type Client struct {
	baseURL   string
	http      *http.Client
	store     session.Store
	notifier  Notifier
	navigator Navigator
	log       logging.Logger
}

// New constructs a Client for the given base URL (e.g.
// "http://localhost:8000/api"). A non-positive timeout falls back to
// DefaultTimeout.
func New(baseURL string, timeout time.Duration, store session.Store, notifier Notifier, navigator Navigator, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		store:     store,
		notifier:  notifier,
		navigator: navigator,
		log:       log,
	}
}

// Get issues a GET request and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return c.failLocal(ctx, path, err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", r, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return c.failLocal(ctx, path, err)
	}
	return c.do(ctx, http.MethodPut, path, "application/json", r, out)
}

// Delete issues a DELETE request and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, out)
}

// Upload issues a multipart POST carrying a single file part plus optional
// extra form fields, and decodes the response into out.
func (c *Client) Upload(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return c.failLocal(ctx, path, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return c.failLocal(ctx, path, err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return c.failLocal(ctx, path, err)
		}
	}
	if err := w.Close(); err != nil {
		return c.failLocal(ctx, path, err)
	}

	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, out)
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// failLocal handles failures that happen before a request is sent
// (unencodable body, unreadable file). They follow the generic error path:
// one notification, network-less, session untouched.
func (c *Client) failLocal(ctx context.Context, path string, err error) error {
	c.log.Error(ctx, "request not sent", "path", path, "error", err)
	c.notifier.Error(msgGeneric)
	return &Error{Kind: KindApplication, Message: msgGeneric, cause: err}
}

// do runs the shared request pipeline: pre-send token attach, the HTTP
// exchange, and the post-receive normalization step.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return c.failLocal(ctx, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.store.GetToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	log.Debug(ctx, "sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		// The request never completed. This proves nothing about the
		// session, so the token stays.
		log.Error(ctx, "request failed", "error", err)
		c.notifier.Error(msgGeneric)
		return &Error{Kind: KindNetwork, Message: msgGeneric, cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "reading response failed", "error", err)
		c.notifier.Error(msgGeneric)
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: msgGeneric, cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return c.teardown(ctx, log, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failResponse(ctx, log, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			log.Error(ctx, "decoding response failed", "status", resp.StatusCode, "error", err)
			c.notifier.Error(msgGeneric)
			return &Error{Kind: KindApplication, Status: resp.StatusCode, Message: msgGeneric, cause: err}
		}
	}

	log.Debug(ctx, "request finished", "status", resp.StatusCode)
	return nil
}

// teardown handles 401/403: clear the persisted token, force navigation to
// the login surface, and surface a single session-expired notification.
// The caller's request is never retried against the cleared session.
func (c *Client) teardown(ctx context.Context, log logging.Logger, status int) error {
	log.Warn(ctx, "authentication rejected", "status", status)

	if err := c.store.ClearToken(); err != nil {
		log.Error(ctx, "clearing token failed", "error", err)
	}
	c.navigator.ToLogin()
	c.notifier.Error(msgSessionExpired)

	return &Error{Kind: KindAuthentication, Status: status, Message: msgSessionExpired}
}

// errorBody is the backend's failure envelope. Detail is either a plain
// message or a list of structured validation failures.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// validationItem is one entry of a schema-validation failure list.
type validationItem struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// failResponse normalizes every non-auth error response into exactly one
// notification and a typed error.
func (c *Client) failResponse(ctx context.Context, log logging.Logger, status int, data []byte) error {
	kind := KindApplication
	if status == http.StatusUnprocessableEntity {
		kind = KindValidation
	}

	message := msgGeneric
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && len(body.Detail) > 0 {
		var detail string
		var items []validationItem

		switch {
		case json.Unmarshal(body.Detail, &detail) == nil && detail != "":
			message = detail
		case json.Unmarshal(body.Detail, &items) == nil && len(items) > 0 && items[0].Msg != "":
			// Only the first validation failure reaches the user; the rest
			// are dropped on purpose, matching the product's behavior.
			message = items[0].Msg
			kind = KindValidation
		}
	}

	log.Warn(ctx, "request rejected", "status", status, "message", message)
	c.notifier.Error(message)
	return &Error{Kind: kind, Status: status, Message: message}
}
