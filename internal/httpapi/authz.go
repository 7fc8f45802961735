package httpapi

import (
	"net/http"
	"strings"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
)

// requirement is what a route demands of the caller.
type requirement int

const (
	requirePublic requirement = iota
	requireAuthenticated
	requireComptable
)

// routeRule maps a path prefix to an access requirement. Rules are
// checked in order and the first match governs, so the more specific
// comptable prefix must precede the general documents prefix.
type routeRule struct {
	prefix string
	exact  bool
	req    requirement
}

var routeRules = []routeRule{
	{prefix: "/api/auth/", req: requirePublic},
	{prefix: "/healthz", exact: true, req: requirePublic},
	{prefix: "/readyz", exact: true, req: requirePublic},
	{prefix: "/metrics", exact: true, req: requirePublic},
	{prefix: "/api/documents/comptable/", req: requireComptable},
	{prefix: "/api/documents", req: requireAuthenticated},
}

func requirementFor(path string) requirement {
	for _, rule := range routeRules {
		if rule.exact {
			if path == rule.prefix {
				return rule.req
			}
			continue
		}
		if strings.HasPrefix(path, rule.prefix) {
			return rule.req
		}
	}
	return requireAuthenticated
}

// authorize enforces the route access table. Unauthenticated callers on
// a protected route get 401 with a WWW-Authenticate challenge;
// authenticated callers lacking the required role get 403.
func (a *API) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if err := a.require(r, requirementFor(r.URL.Path)); err != nil {
			switch err {
			case auth.ErrUnauthenticated:
				w.Header().Set("WWW-Authenticate", `Bearer realm="gestion-documents"`)
				writeError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			default:
				writeError(w, r, http.StatusForbidden, "FORBIDDEN", "insufficient role")
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) require(r *http.Request, req requirement) error {
	if req == requirePublic {
		return nil
	}
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return auth.ErrUnauthenticated
	}
	if req == requireComptable && !principal.HasRole(auth.RoleComptable) {
		return auth.ErrForbidden
	}
	return nil
}
