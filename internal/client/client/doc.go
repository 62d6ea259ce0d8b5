// Package client is the authenticated gateway to the prediction-game API.
//
// # Overview
//
//  1. Client is the call surface page-level services use: Do plus the
//     Get/Post/Put/Patch/Delete helpers, paths relative to the base URL.
//  2. HTTPClient implements it over net/http. It attaches the stored access
//     token as a bearer credential, and when a request comes back 401 it
//     exchanges the refresh token for a new access token and replays the
//     request once. At most one refresh runs at a time; other requests that
//     hit 401 meanwhile wait for it and are replayed with its token.
//  3. InitDatabase and RunMigrations open the local SQLite database that
//     holds the session.
//
// # Error Handling
//
// Transport failures are *NetworkError (matches ErrUnavailable). Non-2xx
// responses are *HTTPError (401/403 match ErrUnauthorized, 404 ErrNotFound).
// A rejected refresh yields an error matching ErrSessionExpired; by then the
// stored tokens are cleared and the SessionInvalidatedFunc has run.
package client
