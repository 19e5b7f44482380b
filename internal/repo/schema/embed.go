// Package schema holds the DDL applied at startup, one file per backend.
package schema

import _ "embed"

//go:embed postgres.sql
var Postgres string

//go:embed sqlite.sql
var SQLite string
