// Package memory tracks session liveness outside the process.
//
// A storefront session lives in process memory; the store only records
// that a session id is active, refreshed on every intent, so that a
// restarted or scaled-out deployment can tell live ids from stale ones.
// Two implementations are provided: an in-process map for tests and
// single-node setups, and a Redis-backed store for shared deployments.
package memory
