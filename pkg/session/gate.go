package session

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/souqna/souqna/pkg/ids"
	"github.com/souqna/souqna/pkg/logger"
	"github.com/souqna/souqna/pkg/vendor"
)

// Route is one of the fixed navigation destinations.
type Route string

const (
	RouteHome            Route = "home"
	RouteProductDetails  Route = "product"
	RouteCategory        Route = "category"
	RouteCart            Route = "cart"
	RouteVendorDashboard Route = "vendor_dashboard"
	RouteBecomeSeller    Route = "become_seller"
	RouteAuth            Route = "auth"
)

// Valid reports whether r is a member of the route enumeration.
func (r Route) Valid() bool {
	switch r {
	case RouteHome, RouteProductDetails, RouteCategory, RouteCart,
		RouteVendorDashboard, RouteBecomeSeller, RouteAuth:
		return true
	}
	return false
}

// Params carries optional route parameters.
type Params struct {
	ProductID string `json:"product_id,omitempty"`
}

// Navigation is the session's current destination plus parameters.
type Navigation struct {
	Route     Route  `json:"route"`
	ProductID string `json:"product_id,omitempty"`
}

// Effect is the side effect a navigation attempt produced.
type Effect int

const (
	// EffectNone means the attempt changed nothing.
	EffectNone Effect = iota
	// EffectAuthPrompt means the transition was refused and the auth
	// prompt should be shown. The route is unchanged.
	EffectAuthPrompt
	// EffectScrollReset means the transition happened and any pending
	// scroll position should reset.
	EffectScrollReset
)

// Mode selects between the two authentication flows.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Credentials is the auth form input. Role is only meaningful when
// registering; login always produces a customer.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Gate mediates identity changes and role-gated navigation for one
// session. Like the other session components it performs no locking;
// the owning session serializes access.
type Gate struct {
	identity   Identity
	nav        Navigation
	authPrompt bool

	ids    ids.Generator
	now    func() time.Time
	logger logger.Logger
}

// NewGate creates a gate in the anonymous state pointed at home.
func NewGate(gen ids.Generator, now func() time.Time, log logger.Logger) *Gate {
	if gen == nil {
		gen = ids.NewUUIDGenerator()
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Gate{
		identity: Anonymous(),
		nav:      Navigation{Route: RouteHome},
		ids:      gen,
		now:      now,
		logger:   log,
	}
}

// NavigateTo attempts a route transition. The vendor dashboard is only
// reachable by a vendor identity; anyone else gets the auth prompt raised
// instead and the route stays put.
func (g *Gate) NavigateTo(route Route, params Params) Effect {
	if route == RouteVendorDashboard && !g.identity.IsVendor() {
		g.authPrompt = true
		g.logger.Debug("Navigation refused", map[string]interface{}{
			"route":  string(route),
			"reason": "vendor_role_required",
		})
		return EffectAuthPrompt
	}

	g.nav.Route = route
	if params.ProductID != "" {
		g.nav.ProductID = params.ProductID
	}
	return EffectScrollReset
}

// Authenticate produces the session user from form input and applies the
// resulting identity. On login the role is fixed to customer; on register
// it comes from the form's role selector. A vendor registration
// synthesizes a fresh vendor record and moves the route to the vendor
// dashboard in the same operation. The auth prompt closes either way.
func (g *Gate) Authenticate(creds Credentials, mode Mode) Identity {
	role := RoleCustomer
	if mode == ModeRegister && creds.Role == RoleVendor {
		role = RoleVendor
	}

	name := strings.TrimSpace(creds.Name)
	if name == "" {
		name = emailLocalPart(creds.Email)
	}

	user := User{
		ID:     g.ids.New(),
		Name:   name,
		Email:  creds.Email,
		Role:   role,
		Avatar: avatarFor(name),
	}

	g.authPrompt = false

	if role == RoleVendor {
		v := vendor.NewForUser(user.ID, user.Name, user.Avatar, g.now())
		g.identity = AsVendor(user, v)
		g.nav.Route = RouteVendorDashboard
	} else {
		g.identity = AsCustomer(user)
	}

	g.logger.Info("User authenticated", map[string]interface{}{
		"user_id": user.ID,
		"role":    string(role),
		"mode":    string(mode),
	})

	return g.identity
}

// Logout clears the identity and forces the route home.
func (g *Gate) Logout() {
	g.identity = Anonymous()
	g.nav = Navigation{Route: RouteHome}
}

// Identity returns the current identity variant.
func (g *Gate) Identity() Identity {
	return g.identity
}

// Navigation returns the current navigation state.
func (g *Gate) Navigation() Navigation {
	return g.nav
}

// AuthPromptOpen reports whether the auth prompt is raised.
func (g *Gate) AuthPromptOpen() bool {
	return g.authPrompt
}

// OpenAuthPrompt raises the auth prompt without a navigation attempt
// (e.g. the "start selling" call to action).
func (g *Gate) OpenAuthPrompt() {
	g.authPrompt = true
}

// DismissAuthPrompt closes the auth prompt without authenticating.
func (g *Gate) DismissAuthPrompt() {
	g.authPrompt = false
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

func avatarFor(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=f68b1e&color=fff", url.QueryEscape(name))
}
