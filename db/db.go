// Package db carries the SQL migrations so production builds can embed
// them into the binary (build tag embed_migrations).
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
