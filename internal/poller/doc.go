// Package poller runs holiday updates on a cron schedule.
//
// The Poller:
//   - Runs one update immediately on Start
//   - Re-runs on a standard 5-field cron spec or descriptor (@daily, @every 6h)
//   - Never overlaps runs; a tick that fires while a run is in flight is skipped
//   - Keeps the most recent report for the health endpoint
package poller
