// Package cli provides the interactive peyjabanki command-line client.
//
// It wires configuration, the local session database, the authenticated API
// client and the game services behind a small REPL. When the API client
// gives up on a session (the refresh token was rejected) the REPL drops back
// to the logged-out state and asks the user to log in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// stdin is closed.
package cli
