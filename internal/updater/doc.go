// Package updater runs the per-country update pipeline.
//
// For each country code a run looks up the calendar, fetches the requested
// years from the configured source, merges the result into the stored
// dataset (or into an empty one in recreate mode), and writes the file back.
// Countries are processed one at a time. A failure is recorded in the run
// report and the run moves on to the next country.
//
// Recreate mode refuses to touch a destination that already holds data
// unless Force is set. With Force the file is only replaced once the fetch
// has succeeded, so a failed fetch leaves the old dataset in place.
package updater
