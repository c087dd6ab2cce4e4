// Package writer mirrors holiday datasets into PostgreSQL.
//
// Each Write replaces one country's rows inside a single transaction, so
// readers see either the previous dataset or the new one, never a mix.
// Rows carry the run ID of the update that produced them.
package writer
