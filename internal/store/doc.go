// Package store provides SQLite-backed run history for bpecheck.
//
// Each harness report is stored as one row in runs and one row per case in
// case_results. Runs are ordered by seq, a counter assigned by the store in
// the writing transaction; ids come from an IDGenerator (UUIDv7 by default).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The schema is embedded and versioned with PRAGMA user_version.
package store
