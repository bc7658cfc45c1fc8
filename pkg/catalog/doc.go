// Package catalog owns the mutable product catalog of a storefront session.
//
// The Store keeps products in most-recent-first order: Add prepends, Remove
// deletes by id (a missing id is a no-op), and lookups hand back value copies
// so callers can never mutate the catalog through a returned product.
//
// Lookup misses are resolved with a fallback, not an error: FindOrFirst
// returns the first catalog entry when the requested id is absent, which is
// the safe default the presentation layer expects.
package catalog
