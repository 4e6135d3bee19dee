// Package store keeps a SQLite library of compiled protocols.
//
// Protocols are content addressed: the hash of a record is the SHA-256 of
// its wire text with a domain prefix, and saving the same text twice returns
// the record written first. Record IDs are UUIDv7 strings so that they sort
// by creation time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Listing order is insertion order (seq ASC), never wall-clock time.
package store
