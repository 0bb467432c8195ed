// Package store provides SQLite-backed durable storage for outfit records.
//
// The store is a key-value surface over a single table:
//   - Add: insert, failing on id collision
//   - Put: upsert
//   - Get / GetAll: point lookup and full scan
//   - Delete: remove by id
//
// All operations are atomic at single-record granularity; there are no
// multi-record transactions. Bulk actions above this layer are sequences of
// independent writes and may partially apply.
//
// Every write passes through catalog.Sanitize first, so no unnormalized
// record (blank name, out-of-range rating, oversized tag set) is ever
// persisted.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Schema changes are applied via PRAGMA user_version migrations in store.go.
package store
