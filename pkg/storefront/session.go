package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/souqna/souqna/pkg/assistant"
	"github.com/souqna/souqna/pkg/cart"
	"github.com/souqna/souqna/pkg/catalog"
	"github.com/souqna/souqna/pkg/logger"
	"github.com/souqna/souqna/pkg/session"
	"github.com/souqna/souqna/pkg/vendor"
)

// ErrUnknownRoute reports a navigation intent naming a route outside the
// fixed enumeration.
var ErrUnknownRoute = errors.New("unknown route")

// Session is one shopper's complete client-side state. A single mutex
// serializes every transition, so the owned components need no locking
// of their own. The assistant bridge is the exception: it locks
// internally, and Send/Search are called without holding the session
// mutex so a slow external call never blocks other intents.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time

	catalog    *catalog.Store
	cart       *cart.Cart
	registry   *vendor.Registry
	gate       *session.Gate
	bridge     *assistant.Bridge
	categories []catalog.Category
	vendors    []vendor.Vendor

	clock  func() time.Time
	logger logger.Logger
}

func newSession(id string, cfg Config) *Session {
	store := catalog.NewStore(cfg.Seed.Products)

	// Before any vendor authenticates, the dashboard projection shows
	// the first seeded vendor.
	var active vendor.Vendor
	if len(cfg.Seed.Vendors) > 0 {
		active = cfg.Seed.Vendors[0]
	}

	log := cfg.Logger.With(map[string]interface{}{"session_id": id})
	now := cfg.Clock()

	return &Session{
		ID:         id,
		CreatedAt:  now,
		lastActive: now,
		catalog:    store,
		cart:       cart.New(),
		registry:   vendor.NewRegistry(store, active, cfg.IDs),
		gate:       session.NewGate(cfg.IDs, cfg.Clock, log),
		bridge:     assistant.NewBridge(cfg.Generator, cfg.AssistantTimeout, log),
		categories: cfg.Seed.Categories,
		vendors:    cfg.Seed.Vendors,
		clock:      cfg.Clock,
		logger:     log,
	}
}

// Navigate attempts a route transition and returns the effect it
// produced.
func (s *Session) Navigate(route session.Route, params session.Params) (session.Effect, error) {
	if !route.Valid() {
		return session.EffectNone, ErrUnknownRoute
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return s.gate.NavigateTo(route, params), nil
}

// AddToCart merges the identified product into the cart. An unknown id
// falls back to the first catalog entry; only an empty catalog makes
// this a no-op, reported as false.
func (s *Session) AddToCart(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	p, ok := s.catalog.FindOrFirst(productID)
	if !ok {
		return false
	}
	s.cart.Add(p)
	return true
}

// RemoveFromCart drops the product's line unconditionally.
func (s *Session) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.cart.Remove(productID)
}

// AdjustCartQuantity applies a signed delta to the line's quantity,
// clamped at 1.
func (s *Session) AdjustCartQuantity(productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.cart.AdjustQuantity(productID, delta)
}

// Authenticate applies the auth form and returns the resulting identity.
// A vendor registration also becomes the registry's active vendor, so
// the dashboard immediately projects the fresh vendor's (empty) listings.
func (s *Session) Authenticate(creds session.Credentials, mode session.Mode) session.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	identity := s.gate.Authenticate(creds, mode)
	if v, ok := identity.Vendor(); ok {
		s.registry.SetActive(v)
	}
	return identity
}

// Logout clears the identity and sends the session home. The cart and
// catalog survive; the vendor projection falls back to the first seeded
// vendor.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.gate.Logout()
	if len(s.vendors) > 0 {
		s.registry.SetActive(s.vendors[0])
	}
}

// OpenAuthPrompt raises the auth prompt without a navigation attempt.
func (s *Session) OpenAuthPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.gate.OpenAuthPrompt()
}

// DismissAuthPrompt closes the auth prompt without authenticating.
func (s *Session) DismissAuthPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.gate.DismissAuthPrompt()
}

// CreateListing turns form input into a product owned by the active
// vendor and prepends it to the catalog.
func (s *Session) CreateListing(in vendor.ListingInput) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	p, err := s.registry.CreateListing(in)
	if err != nil {
		return catalog.Product{}, err
	}

	s.logger.Info("Listing created", map[string]interface{}{
		"operation":  "create_listing",
		"product_id": p.ID,
		"vendor_id":  p.VendorID,
	})
	return p, nil
}

// DeleteListing removes the product on behalf of the active vendor.
// Another vendor's product is refused with vendor.ErrNotOwner.
func (s *Session) DeleteListing(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return s.registry.DeleteListing(s.registry.Active().ID, productID)
}

// SendChat submits user text to the assistant. It reports false when
// the text was dropped (blank, or a reply is already in flight). The
// session mutex is not held across the external call.
func (s *Session) SendChat(ctx context.Context, text string) bool {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()

	return s.bridge.Send(ctx, text)
}

// CancelAssistant aborts the in-flight assistant call, if any.
func (s *Session) CancelAssistant() {
	s.bridge.CancelInFlight()
}

// SearchGrounded runs the one-shot grounded product search.
func (s *Session) SearchGrounded(ctx context.Context, query string) (string, []assistant.Source) {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()

	return s.bridge.Search(ctx, query)
}

// Snapshot projects the session's complete state for the presentation
// boundary.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:      s.ID,
		Navigation:     s.gate.Navigation(),
		AuthPromptOpen: s.gate.AuthPromptOpen(),
		Catalog:        s.catalog.List(),
		Categories:     append([]catalog.Category(nil), s.categories...),
		Cart: CartView{
			Lines: s.cart.Lines(),
			Total: s.cart.Total(),
			Count: s.cart.Count(),
		},
		Vendor: VendorView{
			Active:   s.registry.Active(),
			Listings: s.registry.Listings(),
		},
		Assistant: AssistantView{
			Turns: s.bridge.Transcript(),
			Busy:  s.bridge.Busy(),
		},
	}

	if u, ok := s.gate.Identity().User(); ok {
		snap.User = &u
	}
	return snap
}

// LastActive returns the time of the session's most recent intent.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// touch is called with the mutex held.
func (s *Session) touch() {
	s.lastActive = s.clock()
}
