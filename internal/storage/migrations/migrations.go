// Package migrations embeds the versioned schema files for each SQL dialect.
// Files are named NNN_name.sql and applied in version order.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
