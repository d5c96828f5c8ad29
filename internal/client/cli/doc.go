// Package cli provides the interactive admissions command-line client.
//
// It wires configuration, the local session database, the authenticated API
// client and the applicant and admin controllers behind a REPL. The REPL has
// a current route, like a browser location: "go <path>" navigates, route
// guards may redirect, and entering a route loads its view.
//
// Key features:
//   - register / login / logout with a role based landing route
//   - the four-step application wizard with document upload and download
//   - applicant notifications
//   - admin dashboard, user listing and application review
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
