// Package migrations holds the goose SQL migrations of the buff catalog schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
