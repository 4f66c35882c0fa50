// Package session holds the persisted bearer token for the effy client.
// It is the single source of truth for "am I authenticated": the token is
// read before every outbound request and cleared on logout or when the
// server rejects it.
package session

// Store manages the single persisted bearer token.
//
// Contract:
//   - GetToken: returns the current token or "" when absent. Never fails;
//     an unreadable backing store is reported as absent.
//   - SetToken: persists a non-empty token, overwriting any prior value.
//     Rejects empty values with common.ErrInvalidToken.
//   - ClearToken: removes the token. Idempotent; clearing an absent token
//     is a no-op.
//
// The store implements no expiry logic of its own. Token validity is decided
// only by server responses.
type Store interface {
	GetToken() string
	SetToken(token string) error
	ClearToken() error
}
