// Package cli provides the interactive folio command-line client.
//
// It wires configuration, the local token database, the portfolio API, and an
// interactive REPL. Typical flow: load the portfolio, ask for the admin
// password when the admin session is requested but locked, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Show / export the portfolio page, reload after a load error
//   - Admin login / logout with a persisted edit token
//   - Edit sub-shell over a draft, with image uploads and partial saves
//   - Notifications printed as they are queued
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
