package storefront_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqna/souqna/pkg/assistant"
	"github.com/souqna/souqna/pkg/ids"
	"github.com/souqna/souqna/pkg/session"
	"github.com/souqna/souqna/pkg/storefront"
	"github.com/souqna/souqna/pkg/vendor"
)

// scriptedGenerator returns a fixed reply or error.
type scriptedGenerator struct {
	reply string
	err   error
}

func (g *scriptedGenerator) GenerateReply(ctx context.Context, history []assistant.Turn, query string) (string, error) {
	return g.reply, g.err
}

func (g *scriptedGenerator) SearchWithGrounding(ctx context.Context, query string) (string, []assistant.Source, error) {
	if g.err != nil {
		return "", nil, g.err
	}
	return g.reply, []assistant.Source{{Title: "مراجعة", Link: "https://example.com"}}, nil
}

func newTestManager(t *testing.T, opts ...storefront.Option) *storefront.Manager {
	t.Helper()
	base := []storefront.Option{
		storefront.WithIDGenerator(ids.NewSequence("id")),
	}
	return storefront.NewManager(append(base, opts...)...)
}

func TestNewSessionStartsSeeded(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, "id-1", snap.SessionID)
	assert.Equal(t, session.RouteHome, snap.Navigation.Route)
	assert.Nil(t, snap.User)
	assert.False(t, snap.AuthPromptOpen)
	assert.Len(t, snap.Catalog, 3)
	assert.Len(t, snap.Categories, 8)
	assert.Empty(t, snap.Cart.Lines)
	assert.Equal(t, "v1", snap.Vendor.Active.ID, "dashboard projects the first seeded vendor")
	assert.Empty(t, snap.Assistant.Turns)
}

func TestSessionsAreIndependent(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	a := m.Create(ctx)
	b := m.Create(ctx)

	require.True(t, a.AddToCart("p1"))
	a.RemoveFromCart("p2")

	assert.Equal(t, 1, a.Snapshot().Cart.Count)
	assert.Zero(t, b.Snapshot().Cart.Count, "one session's cart never leaks into another")
}

func TestAddToCartMergesAndCounts(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	require.True(t, s.AddToCart("p1"))
	require.True(t, s.AddToCart("p1"))
	require.True(t, s.AddToCart("p2"))

	snap := s.Snapshot()
	require.Len(t, snap.Cart.Lines, 2)
	assert.Equal(t, 3, snap.Cart.Count, "badge counts units, not lines")
	assert.Equal(t, 2*12499.0+1299.0, snap.Cart.Total)
}

func TestAddToCartUnknownIDFallsBackToFirst(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	require.True(t, s.AddToCart("never-listed"))

	snap := s.Snapshot()
	require.Len(t, snap.Cart.Lines, 1)
	assert.Equal(t, "p1", snap.Cart.Lines[0].Product.ID)
}

func TestAddToCartEmptyCatalog(t *testing.T) {
	m := newTestManager(t, storefront.WithSeed(storefront.Seed{}))
	s := m.Create(context.Background())

	assert.False(t, s.AddToCart("p1"))
	assert.Empty(t, s.Snapshot().Cart.Lines)
}

func TestAdjustCartQuantityClampsAtOne(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	require.True(t, s.AddToCart("p1"))
	s.AdjustCartQuantity("p1", 3)
	assert.Equal(t, 4, s.Snapshot().Cart.Count)

	s.AdjustCartQuantity("p1", -10)
	assert.Equal(t, 1, s.Snapshot().Cart.Count, "quantity never drops below 1")

	s.RemoveFromCart("p1")
	assert.Empty(t, s.Snapshot().Cart.Lines)
}

func TestCartLineSurvivesCatalogDeletion(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	require.True(t, s.AddToCart("p1"))
	require.NoError(t, s.DeleteListing("p1"), "p1 belongs to the active seeded vendor")

	snap := s.Snapshot()
	assert.Len(t, snap.Catalog, 2)
	require.Len(t, snap.Cart.Lines, 1)
	assert.Equal(t, 12499.0, snap.Cart.Lines[0].Product.Price, "cart keeps the frozen snapshot")
}

func TestNavigateVendorDashboardGuard(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	effect, err := s.Navigate(session.RouteVendorDashboard, session.Params{})
	require.NoError(t, err)
	assert.Equal(t, session.EffectAuthPrompt, effect)

	snap := s.Snapshot()
	assert.Equal(t, session.RouteHome, snap.Navigation.Route, "refused navigation leaves the route alone")
	assert.True(t, snap.AuthPromptOpen)

	s.DismissAuthPrompt()
	assert.False(t, s.Snapshot().AuthPromptOpen)
}

func TestNavigateUnknownRoute(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	_, err := s.Navigate(session.Route("checkout"), session.Params{})
	require.ErrorIs(t, err, storefront.ErrUnknownRoute)
}

func TestNavigateToProduct(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	effect, err := s.Navigate(session.RouteProductDetails, session.Params{ProductID: "p2"})
	require.NoError(t, err)
	assert.Equal(t, session.EffectScrollReset, effect)

	nav := s.Snapshot().Navigation
	assert.Equal(t, session.RouteProductDetails, nav.Route)
	assert.Equal(t, "p2", nav.ProductID)
}

func TestVendorRegistrationFlow(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	s.Authenticate(session.Credentials{
		Email: "amina@example.com",
		Role:  session.RoleVendor,
	}, session.ModeRegister)

	snap := s.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "amina", snap.User.Name, "display name falls back to the email local part")
	assert.Equal(t, session.RoleVendor, snap.User.Role)
	assert.Equal(t, session.RouteVendorDashboard, snap.Navigation.Route)
	assert.Equal(t, "v-"+snap.User.ID, snap.Vendor.Active.ID)
	assert.Empty(t, snap.Vendor.Listings, "a fresh vendor has no listings yet")

	p, err := s.CreateListing(vendor.ListingInput{
		Name:        "سماعات لاسلكية",
		Category:    "إلكترونيات",
		Description: "جودة صوت عالية",
		Price:       "350",
	})
	require.NoError(t, err)

	snap = s.Snapshot()
	assert.Equal(t, p.ID, snap.Catalog[0].ID, "new listing leads the catalog")
	require.Len(t, snap.Vendor.Listings, 1)
	assert.Equal(t, snap.Vendor.Active.ID, snap.Vendor.Listings[0].VendorID)
}

func TestDeleteListingRefusedForForeignProduct(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	s.Authenticate(session.Credentials{
		Email: "vendor@example.com",
		Role:  session.RoleVendor,
	}, session.ModeRegister)

	err := s.DeleteListing("p1")
	require.ErrorIs(t, err, vendor.ErrNotOwner)
	assert.Len(t, s.Snapshot().Catalog, 3, "refused deletion changes nothing")
}

func TestLoginAlwaysYieldsCustomer(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	s.Authenticate(session.Credentials{
		Name:  "Yousef",
		Email: "yousef@example.com",
		Role:  session.RoleVendor,
	}, session.ModeLogin)

	snap := s.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, session.RoleCustomer, snap.User.Role, "login ignores the role selector")
	assert.Equal(t, "v1", snap.Vendor.Active.ID, "no vendor identity, seeded projection stays")
}

func TestLogoutResetsIdentityKeepsCart(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	require.True(t, s.AddToCart("p2"))
	s.Authenticate(session.Credentials{
		Email: "vendor@example.com",
		Role:  session.RoleVendor,
	}, session.ModeRegister)

	s.Logout()

	snap := s.Snapshot()
	assert.Nil(t, snap.User)
	assert.Equal(t, session.RouteHome, snap.Navigation.Route)
	assert.Equal(t, "v1", snap.Vendor.Active.ID, "projection falls back to the seeded vendor")
	assert.Equal(t, 1, snap.Cart.Count, "the cart survives logout")
}

func TestSendChatRecordsExchange(t *testing.T) {
	gen := &scriptedGenerator{reply: "أنصحك بجالكسي S23 الترا"}
	m := newTestManager(t, storefront.WithGenerator(gen))
	s := m.Create(context.Background())

	require.True(t, s.SendChat(context.Background(), "ما أفضل هاتف؟"))

	turns := s.Snapshot().Assistant.Turns
	require.Len(t, turns, 2)
	assert.Equal(t, assistant.RoleUser, turns[0].Role)
	assert.Equal(t, gen.reply, turns[1].Text)
}

func TestSendChatWithoutGeneratorApologizes(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	require.True(t, s.SendChat(context.Background(), "سؤال"))

	turns := s.Snapshot().Assistant.Turns
	require.Len(t, turns, 2)
	assert.Equal(t, assistant.Apology, turns[1].Text)
}

func TestSearchGroundedFallsBack(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("down")}
	m := newTestManager(t, storefront.WithGenerator(gen))
	s := m.Create(context.Background())

	text, sources := s.SearchGrounded(context.Background(), "هواتف")
	assert.Equal(t, assistant.SearchUnavailable, text)
	assert.Empty(t, sources)
}

func TestSnapshotIsDetached(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(context.Background())

	require.True(t, s.AddToCart("p1"))
	snap := s.Snapshot()
	snap.Catalog[0].Price = 1
	snap.Cart.Lines[0].Quantity = 99

	fresh := s.Snapshot()
	assert.Equal(t, 12499.0, fresh.Catalog[0].Price)
	assert.Equal(t, 1, fresh.Cart.Lines[0].Quantity)
}

func TestLastActiveAdvances(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	m := newTestManager(t, storefront.WithClock(func() time.Time { return now }))
	s := m.Create(context.Background())

	created := s.LastActive()
	now = now.Add(5 * time.Minute)
	require.True(t, s.AddToCart("p1"))

	assert.True(t, s.LastActive().After(created))
}
