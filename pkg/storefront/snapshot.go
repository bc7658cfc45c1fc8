package storefront

import (
	"github.com/souqna/souqna/pkg/assistant"
	"github.com/souqna/souqna/pkg/cart"
	"github.com/souqna/souqna/pkg/catalog"
	"github.com/souqna/souqna/pkg/session"
	"github.com/souqna/souqna/pkg/vendor"
)

// Snapshot is the read-only projection of one session's complete state.
// Every slice is a copy; mutating a snapshot never affects the session.
type Snapshot struct {
	SessionID      string             `json:"session_id"`
	Navigation     session.Navigation `json:"navigation"`
	AuthPromptOpen bool               `json:"auth_prompt_open"`
	User           *session.User      `json:"user,omitempty"`
	Catalog        []catalog.Product  `json:"catalog"`
	Categories     []catalog.Category `json:"categories"`
	Cart           CartView           `json:"cart"`
	Vendor         VendorView         `json:"vendor"`
	Assistant      AssistantView      `json:"assistant"`
}

// CartView is the cart's snapshot: its lines plus the derived totals the
// presentation layer renders (badge count is the sum of quantities, not
// the number of lines).
type CartView struct {
	Lines []cart.Line `json:"lines"`
	Total float64     `json:"total"`
	Count int         `json:"count"`
}

// VendorView is the vendor dashboard's snapshot: the active vendor and
// the catalog filtered down to their listings.
type VendorView struct {
	Active   vendor.Vendor     `json:"active"`
	Listings []catalog.Product `json:"listings"`
}

// AssistantView is the conversation's snapshot.
type AssistantView struct {
	Turns []assistant.Turn `json:"turns"`
	Busy  bool             `json:"busy"`
}
