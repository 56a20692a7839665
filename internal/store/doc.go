// Package store provides SQLite-backed durable storage for evaluation
// history.
//
// The store is an append-only log of evaluations. Each record carries:
//   - A UUIDv7 id (time-sortable, assigned by the Recorder)
//   - A logical seq number (ordering, never wall-clock time)
//   - The canonical expression and its content hash
//   - The rendered result, or the error code when evaluation failed
//
// # Patterns
//
// Idempotent writes
//   - INSERT ... ON CONFLICT(id) DO NOTHING
//   - Writing the same record twice is not an error
//
// Logical ordering
//   - seq INTEGER from a monotonic clock resumed from MAX(seq)
//   - Queries order by seq, then id COLLATE BINARY, so results are
//     deterministic
//
// Empty reads
//   - List queries return empty slices, never nil
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Expression hashes come from rpn.Hash (SHA-256 with domain separation
// over the canonical token form).
package store
