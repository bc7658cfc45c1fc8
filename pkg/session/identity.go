package session

import "github.com/souqna/souqna/pkg/vendor"

// Role distinguishes what a registered user can do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

// User is the authenticated account of a session.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type identityKind int

const (
	kindAnonymous identityKind = iota
	kindCustomer
	kindVendor
)

// Identity is the session's tagged identity variant:
// anonymous, customer, or vendor with its vendor record.
type Identity struct {
	kind   identityKind
	user   User
	vendor vendor.Vendor
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{kind: kindAnonymous}
}

// AsCustomer returns a customer identity for the given user.
func AsCustomer(u User) Identity {
	return Identity{kind: kindCustomer, user: u}
}

// AsVendor returns a vendor identity pairing the user with their vendor
// record.
func AsVendor(u User, v vendor.Vendor) Identity {
	return Identity{kind: kindVendor, user: u, vendor: v}
}

// IsAnonymous reports whether no user is authenticated.
func (i Identity) IsAnonymous() bool {
	return i.kind == kindAnonymous
}

// IsVendor reports whether the identity may enter the vendor dashboard.
func (i Identity) IsVendor() bool {
	return i.kind == kindVendor
}

// User returns the authenticated user, if any.
func (i Identity) User() (User, bool) {
	if i.kind == kindAnonymous {
		return User{}, false
	}
	return i.user, true
}

// Vendor returns the vendor record of a vendor identity.
func (i Identity) Vendor() (vendor.Vendor, bool) {
	if i.kind != kindVendor {
		return vendor.Vendor{}, false
	}
	return i.vendor, true
}
