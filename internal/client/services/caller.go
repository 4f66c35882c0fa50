// Package services contains the application services of the effy client:
// the auth session controller and the document operations built on top of
// the shared API client.
package services

import (
	"context"
	"io"
)

// Caller is the HTTP surface services depend on. *api.Client satisfies it;
// tests can substitute a lightweight fake.
type Caller interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	Put(ctx context.Context, path string, body any, out any) error
	Delete(ctx context.Context, path string, out any) error
	Upload(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any) error
}
