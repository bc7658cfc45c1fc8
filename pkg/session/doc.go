// Package session owns the storefront session's identity and navigation
// state and guards role-restricted destinations.
//
// Identity is a tagged variant (anonymous, customer, vendor) rather than a
// user record with a role string, so the vendor-dashboard guard is a single
// variant check. The gate is a small explicit state machine: the only
// guarded transition is navigation to the vendor dashboard, which is
// refused with an auth-prompt effect unless the identity is a vendor.
//
// The one cross-component effect in the system lives here: authenticating
// with the vendor role synthesizes a fresh active vendor record and moves
// the route to the vendor dashboard in the same operation.
package session
