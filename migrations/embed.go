package migrations

import "embed"

// Files holds the schema migrations db.OpenSQLite applies, ordered by their
// numeric file-name prefix.
//
//go:embed *.sql
var Files embed.FS
