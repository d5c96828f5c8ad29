package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy. Every failure returned by HTTPClient matches exactly one
// of these with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("server unavailable")
	ErrServer       = errors.New("server error")
)

// ErrAuthRedirect is returned when the backend redirects a request into its
// OAuth handshake. The session has already been terminated when it is seen.
var ErrAuthRedirect = errors.New("redirected to oauth authorization")

// APIError is a failed exchange with the backend. Status is 0 when no
// response was received, in which case Err holds the transport error.
type APIError struct {
	Method string
	URL    string
	Status int
	Body   []byte
	Err    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Status)
}

func (e *APIError) Unwrap() []error {
	errs := []error{e.kind()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *APIError) kind() error {
	switch e.Status {
	case 0:
		if errors.Is(e.Err, ErrAuthRedirect) {
			return ErrUnauthorized
		}
		return ErrUnavailable
	case 400:
		return ErrValidation
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	default:
		return ErrServer
	}
}

// Message returns the normalized response body, or "" when it carries none.
func (e *APIError) Message() string {
	return NormalizeBody(e.Body)
}

// StatusOf returns the HTTP status of err, 0 for a transport failure and -1
// when err did not come from the backend.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

// DisplayError is the only error type the services layer hands to
// controllers. Message is ready to show; Kind is one of the sentinels above.
type DisplayError struct {
	Message string
	Kind    error
	Err     error
}

func (e *DisplayError) Error() string { return e.Message }

func (e *DisplayError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Display wraps err with a user-facing message, keeping its sentinel kind.
func Display(message string, err error) *DisplayError {
	return &DisplayError{Message: message, Kind: KindOf(err), Err: err}
}

// KindOf returns the taxonomy sentinel err matches, or nil.
func KindOf(err error) error {
	for _, k := range []error{ErrNotFound, ErrValidation, ErrUnauthorized, ErrForbidden, ErrUnavailable, ErrServer} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// NormalizeBody reduces an error body to one displayable string.
//
// A JSON string yields the string, an object with a string "message" yields
// the message, any other object or array yields its values joined with ", "
// in document order, and non-JSON text yields the trimmed text. Empty input
// yields "".
func NormalizeBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	if !json.Valid(trimmed) {
		return string(trimmed)
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return strings.TrimSpace(s)
		}
	case '{':
		var probe struct {
			Message *string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Message != nil && *probe.Message != "" {
			return *probe.Message
		}
		return strings.Join(orderedValues(trimmed), ", ")
	case '[':
		return strings.Join(orderedValues(trimmed), ", ")
	case 'n':
		return ""
	}
	return string(trimmed)
}

// orderedValues returns the top-level values of a JSON object or array as
// text, preserving document order.
func orderedValues(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	open, err := dec.Token()
	if err != nil {
		return nil
	}
	isObject := open == json.Delim('{')

	var values []string
	for dec.More() {
		if isObject {
			if _, err := dec.Token(); err != nil {
				return values
			}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return values
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			values = append(values, s)
			continue
		}
		if string(raw) == "null" {
			continue
		}
		values = append(values, string(raw))
	}
	return values
}

// ObjectValues joins the values of a JSON object body with ", ". It reports
// false when body is not an object.
func ObjectValues(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return "", false
	}
	return strings.Join(orderedValues(trimmed), ", "), true
}
