// Package guard gates every navigation through a declared per-route access
// policy, consulting (and if needed repairing) the session before deciding.
package guard

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-client/internal/core/domain"
	"github.com/learnhub/learnhub-client/internal/core/ports"
)

// Redirect targets used by policy decisions.
const (
	LoginRoute = "/login"
	HomeRoute  = "/"
)

// Policy declares the access requirements of a single route. Declared once,
// read-only at navigation time.
type Policy struct {
	RequiresAuth  bool
	RequiresAdmin bool
	RequiresGuest bool
}

// Decision is the outcome of evaluating one navigation attempt.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision             { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Routes returns the static route table. Unmatched paths redirect to the
// login route.
func Routes() map[string]Policy {
	return map[string]Policy{
		LoginRoute:  {RequiresGuest: true},
		"/register": {RequiresGuest: true},

		HomeRoute:   {RequiresAuth: true},
		"/courses":  {RequiresAuth: true},
		"/catalog":  {RequiresAuth: true},
		"/progress": {RequiresAuth: true},
		"/settings": {RequiresAuth: true},

		"/admin/users":     {RequiresAuth: true, RequiresAdmin: true},
		"/admin/courses":   {RequiresAuth: true, RequiresAdmin: true},
		"/admin/analytics": {RequiresAuth: true, RequiresAdmin: true},
	}
}

// Guard evaluates route policies against the session.
type Guard struct {
	session ports.Session
	storage ports.SessionStorage
	routes  map[string]Policy
	log     zerolog.Logger
}

func New(session ports.Session, storage ports.SessionStorage, routes map[string]Policy, log zerolog.Logger) *Guard {
	if routes == nil {
		routes = Routes()
	}
	return &Guard{session: session, storage: storage, routes: routes, log: log}
}

// Evaluate decides one navigation attempt. The checks run in a fixed order:
// the plain authentication requirement before the admin requirement, so a
// route requiring both redirects an unauthenticated session to the login
// route and an authenticated non-admin to home.
func (g *Guard) Evaluate(ctx context.Context, path string) Decision {
	policy, known := g.routes[path]
	if !known {
		return redirect(LoginRoute)
	}

	// Close the race between a cold start and guard evaluation: if a token
	// is persisted but the session is not yet authenticated, restore first
	// and wait for it.
	if !g.session.IsAuthenticated() && g.tokenPersisted(ctx) {
		if err := g.session.LoadFromStorage(ctx); err != nil {
			g.log.Warn().Err(err).Str("path", path).Msg("session restore failed")
		}
	}

	authenticated := g.session.IsAuthenticated()

	if policy.RequiresAuth && !authenticated {
		return redirect(LoginRoute)
	}
	if policy.RequiresAdmin && (!authenticated || !g.session.CurrentUser().IsAdmin()) {
		return redirect(HomeRoute)
	}
	if policy.RequiresGuest && authenticated {
		return redirect(HomeRoute)
	}
	return allow()
}

func (g *Guard) tokenPersisted(ctx context.Context) bool {
	token, err := g.storage.Read(ctx, domain.StorageKeyToken)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			g.log.Warn().Err(err).Msg("read persisted token")
		}
		return false
	}
	return token != ""
}
