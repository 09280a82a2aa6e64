// Package migrations nhúng các file schema SQL vào binary
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
