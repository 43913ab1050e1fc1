package migrations

import "embed"

// Postgres and SQLite embed the SQL migration files for each preference
// store backend. The golang-migrate library reads them via the iofs driver
// when applying migrations.
//
//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS

const Version = 1
