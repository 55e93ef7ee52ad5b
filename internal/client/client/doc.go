// Package client contains the board API client and the local database
// bootstrap of the CLI.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): Register, Login and the
//     board CRUD calls.
//  2. An HTTP implementation (see HTTPClient) speaking JSON to the REST API.
//     Credentials are not its concern: the http.Client it is given carries
//     a gateway.Transport that attaches them.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite session database and applies embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *APIError, carrying the status code and the
// server's message. APIError matches the sentinels ErrUnauthorized,
// ErrForbidden, ErrNotFound and ErrUnavailable with errors.Is. Transport
// errors are returned as produced by net/http.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation and timeouts.
package client
