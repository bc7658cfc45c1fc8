// Package storefront composes the marketplace session core.
//
// A Session owns one shopper's complete client-side state: the visible
// catalog, the cart, the vendor registry view, the navigation/identity
// gate, and the assistant bridge. All state transitions on a session
// are serialized by a single mutex, so the individual components stay
// lock-free. The one exception is the assistant bridge, which manages
// its own locking because its external call must not suspend the
// session.
//
// A Manager owns the live sessions keyed by id, journals their
// liveness to a memory.Store, and sweeps idle ones.
package storefront
