package guard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/admissions/internal/common"
	"github.com/dmitrijs2005/admissions/internal/logging"
	"github.com/gorilla/mux"
)

// Route names.
const (
	RouteHome           = "home"
	RouteApplicant      = "applicant"
	RouteAdminDashboard = "admin-dashboard"
	RouteAdminUsers     = "admin-users"
	RouteAdminUser      = "admin-user"
	RouteLogin          = "login"
	RouteRegister       = "register"
	RouteAuth           = "auth"
)

const maxHops = 8

var ErrTooManyRedirects = errors.New("navigation exceeded redirect limit")

// Route is one entry of the route table. A route with RedirectTo never
// becomes current.
type Route struct {
	Name       string
	Path       string
	Guards     []Guard
	RedirectTo string
}

// DefaultRoutes is the application's route table. Unknown paths go home.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteHome, Path: common.PathHome},
		{Name: RouteApplicant, Path: common.PathApplicant, Guards: []Guard{Authenticated, ApplicantOnly}},
		{Name: RouteAdminDashboard, Path: common.PathAdmin, Guards: []Guard{AdminOnly}},
		{Name: RouteAdminUsers, Path: common.PathAdminUsers, Guards: []Guard{AdminOnly}},
		{Name: RouteAdminUser, Path: common.PathAdminUsers + "/{id:[0-9]+}", Guards: []Guard{AdminOnly}},
		{Name: RouteLogin, Path: common.PathLogin},
		{Name: RouteRegister, Path: common.PathRegister},
		{Name: RouteAuth, Path: "/auth", RedirectTo: common.PathLogin},
	}
}

// Location is where the router currently is.
type Location struct {
	Route string
	Path  string
	Vars  map[string]string
	Query url.Values
}

// EnterFunc runs after a route becomes current.
type EnterFunc func(ctx context.Context, loc Location)

// Router resolves navigation targets against the route table, applies the
// route guards and follows their redirects. It implements client.Navigator.
type Router struct {
	sessions Sessions
	log      logging.Logger
	mux      *mux.Router
	routes   map[string]Route

	hooksMu sync.Mutex
	hooks   map[string][]EnterFunc

	mu      sync.Mutex
	current Location
}

func NewRouter(sessions Sessions, routes []Route, log logging.Logger) *Router {
	if log == nil {
		log = logging.Nop()
	}
	r := &Router{
		sessions: sessions,
		log:      log,
		mux:      mux.NewRouter(),
		routes:   make(map[string]Route, len(routes)),
		hooks:    make(map[string][]EnterFunc),
	}
	for _, rt := range routes {
		r.routes[rt.Name] = rt
		r.mux.Path(rt.Path).Name(rt.Name)
	}
	return r
}

// OnEnter registers fn for the named route.
func (r *Router) OnEnter(route string, fn EnterFunc) {
	r.hooksMu.Lock()
	defer r.hooksMu.Unlock()
	r.hooks[route] = append(r.hooks[route], fn)
}

// Current returns the current location.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate moves to target, e.g. "/admin/users/7" or "/auth/login?expired=true".
// Guards are evaluated on every attempt; denials and route redirects are
// followed until a route admits the navigation.
func (r *Router) Navigate(ctx context.Context, target string) error {
	loc, err := r.Resolve(ctx, target)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.current = loc
	r.mu.Unlock()
	r.log.Debug(ctx, "navigated", "route", loc.Route, "path", loc.Path)

	r.hooksMu.Lock()
	hooks := append([]EnterFunc(nil), r.hooks[loc.Route]...)
	r.hooksMu.Unlock()
	for _, fn := range hooks {
		fn(ctx, loc)
	}
	return nil
}

// Resolve returns the location navigation to target would end at, running
// the guards (and their side effects) but without entering it.
func (r *Router) Resolve(ctx context.Context, target string) (Location, error) {
	for hop := 0; hop < maxHops; hop++ {
		u, err := url.Parse(target)
		if err != nil {
			return Location{}, fmt.Errorf("invalid navigation target %q: %w", target, err)
		}
		path := normalizePath(u.Path)

		route, vars, ok := r.match(path)
		if !ok {
			target = common.PathHome
			continue
		}
		if route.RedirectTo != "" {
			target = route.RedirectTo
			continue
		}

		d := Evaluate(ctx, r.sessions, route.Guards...)
		if !d.Allow {
			if d.Cleanup != nil {
				r.log.Error(ctx, "clearing expired session failed", "route", route.Name, "error", d.Cleanup)
			}
			r.log.Info(ctx, "navigation denied", "route", route.Name, "redirect", d.Target())
			target = d.Target()
			continue
		}

		return Location{Route: route.Name, Path: path, Vars: vars, Query: u.Query()}, nil
	}
	return Location{}, ErrTooManyRedirects
}

func (r *Router) match(path string) (Route, map[string]string, bool) {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}}
	var m mux.RouteMatch
	if !r.mux.Match(req, &m) || m.Route == nil {
		return Route{}, nil, false
	}
	rt, ok := r.routes[m.Route.GetName()]
	return rt, m.Vars, ok
}

func normalizePath(p string) string {
	if p == "" {
		return common.PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = common.PathHome
		}
	}
	return p
}
