// Package session owns the authenticated session of the client.
//
// The session is persisted as two durable key/value entries: the raw access
// token under "accessToken" and a JSON payload
// {"userId","email","roles","tokenExpiry"} under "userData", with
// tokenExpiry in Unix milliseconds. Storage is the single source of truth;
// every read goes back to it.
//
// Only Login and Logout mutate the session. Current validates expiry on each
// call: a read that finds an expired or unparseable payload performs the
// same cleanup as Logout before returning nil. The client enforces its own
// fixed lifetime (TTL) because the backend does not report one; when the
// token is a JWT its "exp" claim is recorded in Session.ServerExpiry for
// diagnostics only.
package session
