// Package httpapi is the presentation boundary of the storefront: a
// thin JSON intent/snapshot API over the session manager. Handlers
// translate requests into session intents and reply with either the
// full session snapshot or a small operation-specific payload; no
// domain logic lives here.
package httpapi
