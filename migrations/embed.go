// Package migrations carries the embedded SQL schema migrations applied at
// server startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
