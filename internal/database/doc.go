// Package database opens the optional PostgreSQL pool that mirrors the
// flat-file holiday datasets.
//
// The JSON files remain the source of truth; the database copy exists for
// consumers that prefer SQL.
package database
