// Package client talks to the admissions backend.
//
// # Overview
//
// The package provides:
//  1. The REST contract (see the Client interface) and its implementation
//     over net/http (see HTTPClient).
//  2. The request authenticator (see Authenticator), an http.RoundTripper
//     that attaches the bearer token and an X-Request-ID to every request
//     for the API origin. A 401 response, or a transport failure while
//     following the backend's OAuth redirect, clears the session and
//     navigates to the login route; the error still reaches the caller.
//  3. The error taxonomy shared by the services layer.
//
// # Error Handling
//
// Every failure is an *APIError that matches exactly one sentinel with
// errors.Is: ErrNotFound, ErrValidation, ErrUnauthorized, ErrForbidden,
// ErrUnavailable or ErrServer. NormalizeBody reduces the backend's error
// bodies (JSON string, {"message": ...}, field map, plain text) to one
// string. The services layer turns these into *DisplayError values, which
// are the only errors controllers see.
//
// Nothing is retried.
package client
