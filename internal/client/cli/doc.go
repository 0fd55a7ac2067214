// Package cli provides the interactive mpdash terminal client.
//
// It wires the session controller, the route table and the product
// services into a REPL. Every command that changes the location renders
// the view the router resolves for it; protected views are only shown to
// an authenticated session, everything else lands on the login view.
//
// Key features:
//   - Login / Signup / Logout
//   - Dashboard tool grid, profile and "coming soon" views
//   - Product analysis and tracking (track, untrack, list)
//   - Background backend liveness check shown in the prompt
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
