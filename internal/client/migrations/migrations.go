// Package migrations embeds the SQL migrations of the local session
// database. They are applied by goose at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
