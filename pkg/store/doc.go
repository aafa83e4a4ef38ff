// Package store provides named-scenario storage for serve mode.
//
// A [Store] holds [Record] values: scenarios with server-assigned UUIDs and
// timestamps. Four backends cover the deployment spectrum:
//
//   - [MemoryStore]: in-memory, for development and tests
//   - [FileStore]: JSON files in a directory, for single-instance CLI serving
//   - [RedisStore]: Redis, for multi-instance deployments
//   - [MongoStore]: MongoDB, for durable multi-instance deployments
//
// All backends share the same semantics: Get and Delete return [ErrNotFound]
// for missing IDs, Put assigns a fresh UUID when the record has none, and
// List orders by ID. Wrap any backend with [Instrument] to emit
// observability store hooks.
package store
