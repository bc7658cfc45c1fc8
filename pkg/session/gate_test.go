package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqna/souqna/pkg/ids"
	"github.com/souqna/souqna/pkg/session"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func newTestGate(t *testing.T) *session.Gate {
	t.Helper()
	return session.NewGate(ids.NewSequence("u"), fixedNow, nil)
}

func TestGateStartsAnonymousAtHome(t *testing.T) {
	g := newTestGate(t)

	assert.True(t, g.Identity().IsAnonymous())
	assert.Equal(t, session.RouteHome, g.Navigation().Route)
	assert.False(t, g.AuthPromptOpen())
}

func TestNavigateToUpdatesRouteAndParams(t *testing.T) {
	g := newTestGate(t)

	effect := g.NavigateTo(session.RouteProductDetails, session.Params{ProductID: "p3"})
	assert.Equal(t, session.EffectScrollReset, effect)

	nav := g.Navigation()
	assert.Equal(t, session.RouteProductDetails, nav.Route)
	assert.Equal(t, "p3", nav.ProductID)

	// Navigating without params keeps the selected product
	g.NavigateTo(session.RouteCart, session.Params{})
	assert.Equal(t, "p3", g.Navigation().ProductID)
}

func TestVendorDashboardGuard(t *testing.T) {
	t.Run("anonymous is refused", func(t *testing.T) {
		g := newTestGate(t)
		effect := g.NavigateTo(session.RouteVendorDashboard, session.Params{})

		assert.Equal(t, session.EffectAuthPrompt, effect)
		assert.Equal(t, session.RouteHome, g.Navigation().Route, "route must be unchanged")
		assert.True(t, g.AuthPromptOpen())
	})

	t.Run("customer is refused", func(t *testing.T) {
		g := newTestGate(t)
		g.Authenticate(session.Credentials{Email: "sara@example.com"}, session.ModeLogin)

		effect := g.NavigateTo(session.RouteVendorDashboard, session.Params{})
		assert.Equal(t, session.EffectAuthPrompt, effect)
		assert.Equal(t, session.RouteHome, g.Navigation().Route)
		assert.True(t, g.AuthPromptOpen())
	})

	t.Run("vendor passes", func(t *testing.T) {
		g := newTestGate(t)
		g.Authenticate(session.Credentials{
			Name: "Amina", Email: "amina@example.com", Role: session.RoleVendor,
		}, session.ModeRegister)

		g.NavigateTo(session.RouteHome, session.Params{})
		effect := g.NavigateTo(session.RouteVendorDashboard, session.Params{})
		assert.Equal(t, session.EffectScrollReset, effect)
		assert.Equal(t, session.RouteVendorDashboard, g.Navigation().Route)
	})
}

func TestLoginAlwaysYieldsCustomer(t *testing.T) {
	g := newTestGate(t)

	// Even when the form carries a vendor role, login ignores it
	id := g.Authenticate(session.Credentials{
		Email: "sara@example.com", Role: session.RoleVendor,
	}, session.ModeLogin)

	require.False(t, id.IsAnonymous())
	assert.False(t, id.IsVendor())

	u, ok := id.User()
	require.True(t, ok)
	assert.Equal(t, session.RoleCustomer, u.Role)
	assert.Equal(t, "sara", u.Name, "display name falls back to the email local part")
	assert.NotEmpty(t, u.Avatar)
}

func TestVendorRegistrationSynthesizesVendor(t *testing.T) {
	g := newTestGate(t)

	id := g.Authenticate(session.Credentials{
		Name: "Amina", Email: "amina@example.com", Role: session.RoleVendor,
	}, session.ModeRegister)

	require.True(t, id.IsVendor())

	v, ok := id.Vendor()
	require.True(t, ok)
	assert.Equal(t, "v-u-1", v.ID)
	assert.Equal(t, "Amina", v.Name)
	assert.Equal(t, 5.0, v.Rating)
	assert.Zero(t, v.TotalSales)
	assert.Equal(t, fixedNow(), v.JoinedDate)

	// Same operation moves the route to the dashboard and closes the prompt
	assert.Equal(t, session.RouteVendorDashboard, g.Navigation().Route)
	assert.False(t, g.AuthPromptOpen())
}

func TestCustomerRegistrationKeepsRoute(t *testing.T) {
	g := newTestGate(t)
	g.NavigateTo(session.RouteCart, session.Params{})

	g.Authenticate(session.Credentials{
		Name: "Sara", Email: "sara@example.com", Role: session.RoleCustomer,
	}, session.ModeRegister)

	assert.Equal(t, session.RouteCart, g.Navigation().Route)
}

func TestAuthenticateClosesPrompt(t *testing.T) {
	g := newTestGate(t)
	g.NavigateTo(session.RouteVendorDashboard, session.Params{})
	require.True(t, g.AuthPromptOpen())

	g.Authenticate(session.Credentials{Email: "x@example.com"}, session.ModeLogin)
	assert.False(t, g.AuthPromptOpen())
}

func TestLogout(t *testing.T) {
	g := newTestGate(t)
	g.Authenticate(session.Credentials{
		Name: "Amina", Email: "amina@example.com", Role: session.RoleVendor,
	}, session.ModeRegister)

	g.Logout()

	assert.True(t, g.Identity().IsAnonymous())
	assert.Equal(t, session.RouteHome, g.Navigation().Route)
}

func TestOpenAndDismissAuthPrompt(t *testing.T) {
	g := newTestGate(t)
	g.OpenAuthPrompt()
	assert.True(t, g.AuthPromptOpen())
	g.DismissAuthPrompt()
	assert.False(t, g.AuthPromptOpen())
}

func TestRouteValid(t *testing.T) {
	for _, r := range []session.Route{
		session.RouteHome, session.RouteProductDetails, session.RouteCategory,
		session.RouteCart, session.RouteVendorDashboard, session.RouteBecomeSeller,
		session.RouteAuth,
	} {
		assert.True(t, r.Valid(), "route %s", r)
	}
	assert.False(t, session.Route("checkout").Valid())
}
