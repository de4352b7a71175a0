// Package dispatch routes action-based API calls through an explicit
// command table. Every supported action is enumerated at startup together
// with its HTTP method and the role set allowed to invoke it.
package dispatch

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// Route is one entry of the command table. A nil role set means the action
// is public; otherwise the session principal must hold one of the roles.
type Route struct {
	Method  string
	Roles   []shared.Role
	Handler http.HandlerFunc
}

// Dispatcher resolves the `action` query parameter (or path segment) to a
// registered route, runs the authorization gate, and invokes the handler.
type Dispatcher struct {
	logger  *slog.Logger
	routes  map[string]Route
	aliases map[string]string
}

// New constructs an empty Dispatcher.
func New(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		routes:  make(map[string]Route),
		aliases: make(map[string]string),
	}
}

// Handle registers an action. Passing no roles makes the action public.
func (d *Dispatcher) Handle(action, method string, handler http.HandlerFunc, roles ...shared.Role) {
	d.routes[action] = Route{Method: method, Roles: roles, Handler: handler}
}

// Alias makes an alternative action name resolve to an existing one.
func (d *Dispatcher) Alias(alias, action string) {
	d.aliases[alias] = action
}

// Actions returns the registered action names, aliases excluded.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.routes))
	for name := range d.routes {
		names = append(names, name)
	}
	return names
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	if action == "" {
		action = r.URL.Query().Get("action")
	}
	if canonical, ok := d.aliases[action]; ok {
		action = canonical
	}

	route, ok := d.routes[action]
	if !ok {
		httpx.Error(w, http.StatusNotFound, "action '"+action+"' not found")
		return
	}
	if r.Method != route.Method {
		httpx.Error(w, http.StatusMethodNotAllowed, "method not allowed for action '"+action+"'")
		return
	}

	if route.Roles != nil {
		principal := shared.PrincipalFromContext(r.Context())
		if principal == nil {
			httpx.Error(w, http.StatusUnauthorized, "authentication required, please log in")
			return
		}
		if !principal.HasRole(route.Roles...) {
			if d.logger != nil {
				d.logger.Warn("action forbidden",
					slog.String("action", action),
					slog.String("user", principal.ID),
					slog.String("role", string(principal.Role)))
			}
			httpx.Error(w, http.StatusForbidden, "you do not have permission to perform this action")
			return
		}
	}

	route.Handler(w, r)
}
