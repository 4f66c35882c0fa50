package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request identifier for log correlation.
const RequestIDHeaderName = "X-Request-Id"
