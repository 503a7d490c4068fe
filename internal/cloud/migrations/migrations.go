// Package migrations embeds the cloud Postgres schema for goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
