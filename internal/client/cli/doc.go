// Package cli provides the interactive board command-line client.
//
// It wires configuration, the local session database, the API client and
// an interactive REPL. On start the session is restored from the stored
// credential cookie; a background watcher warns before the credential
// expires and logs the user out once it has.
//
// Key features:
//   - Register / Login / Logout, profile view
//   - Paginated board list, show, create, edit and delete
//   - Protected commands go through the route guard; a command that needs
//     a login prompts for one and then runs
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartExpiryWatcher, and runREPL for details.
package cli
