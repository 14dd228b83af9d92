// Package migrations contiene el esquema SQL versionado (NNN_descripcion.sql).
package migrations

import "embed"

// FS archivos .sql embebidos en el binario de cmd/migrate.
//
//go:embed *.sql
var FS embed.FS
