package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Every failed call is classified into exactly one of three error kinds
// before it reaches a caller:
//
//   - *ServerError: a response arrived with a non-2xx status.
//   - *NetworkError: the request was sent but no response came back
//     (timeout, connection refused, DNS failure).
//   - *RequestSetupError: the request could not be constructed or sent.
//
// Callers match with errors.As; the client never recovers an error locally.

// ServerError is returned when the backend responded with a failure status.
// Message is extracted best-effort from the response body ("error" or
// "message" field), falling back to the HTTP status text. Raw carries the
// full payload for a technical-details affordance.
type ServerError struct {
	Status  int
	Message string
	Raw     json.RawMessage
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// NetworkError is returned when the request was sent but no response was
// received within the configured timeout.
type NetworkError struct {
	cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.cause)
}

func (e *NetworkError) Unwrap() error { return e.cause }

// RequestSetupError is returned when the call could not be constructed,
// before anything went over the wire.
type RequestSetupError struct {
	Message string
}

func (e *RequestSetupError) Error() string {
	return "request setup error: " + e.Message
}

// extractMessage pulls a human-readable message out of an error payload.
// The backend is inconsistent about the field name, so both "error" and
// "message" are tried before falling back to the status text.
func extractMessage(raw []byte, status int) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return http.StatusText(status)
}
