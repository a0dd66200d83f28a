// Package driven defines the interfaces the core requires from
// infrastructure: the SQLite-backed stores over the meetings index, the
// configuration store, and the embedding provider used for semantic search.
package driven
