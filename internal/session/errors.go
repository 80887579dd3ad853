package session

import "errors"

// Sentinel errors for session operations. Wrap with fmt.Errorf("%w") when
// adding context; callers check with errors.Is / errors.As.
var (
	// ErrAuthFailed indicates a transport or server failure during login.
	// The underlying detail is deliberately suppressed so backend internals
	// never leak into the UI.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrSessionExpired indicates the stored token was rejected when the
	// profile was fetched during hydration. Recovered internally by
	// degrading to anonymous; never surfaced to the user on first load.
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError reports missing or malformed input, detected before any
// network call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// AuthRejectedError is a well-formed negative response from a login
// endpoint: the backend answered, and the answer was no.
type AuthRejectedError struct {
	Message string
}

func (e *AuthRejectedError) Error() string {
	if e.Message == "" {
		return "authentication rejected"
	}
	return e.Message
}
