package auth

import "errors"

// Credential verification failures. They stay distinct internally so
// callers can log precisely, but the HTTP boundary collapses all three
// into one INVALID_CREDENTIALS response.
var (
	ErrUnknownUser    = errors.New("auth: unknown user")
	ErrInactiveUser   = errors.New("auth: user is deactivated")
	ErrBadCredentials = errors.New("auth: bad credentials")
)

// Token verification failures.
var (
	ErrTokenMalformed = errors.New("auth: malformed token")
	ErrTokenSignature = errors.New("auth: token signature mismatch")
	ErrTokenExpired   = errors.New("auth: token expired")
	ErrUnknownSubject = errors.New("auth: token subject unknown or inactive")
)

// Authorization failures.
var (
	ErrUnauthenticated = errors.New("auth: authentication required")
	ErrForbidden       = errors.New("auth: insufficient role")
)

var (
	ErrNotFound      = errors.New("auth: not found")
	ErrAlreadyExists = errors.New("auth: already exists")
)
