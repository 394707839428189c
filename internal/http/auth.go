package http

import (
	"net/http"
	"strings"

	"github.com/Flarenzy/site-ipam/internal/auth"
)

func isPublicPath(path string) bool {
	return path == "/healthz" || path == "/readyz" || strings.HasPrefix(path, "/swagger/")
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	if a.authenticator == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			a.respond(w, r, http.StatusUnauthorized, ErrorResponse{Error: "missing token"})
			return
		}

		principal, err := a.authenticator.Authenticate(r.Context(), strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			a.Logger.DebugContext(r.Context(), "rejected bearer token", "err", err.Error())
			a.respond(w, r, http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		if a.writeRole != "" && isWrite(r.Method) && !principal.HasRole(a.writeRole) {
			a.Logger.InfoContext(r.Context(), "write denied", "subject", principal.Subject, "role", a.writeRole)
			a.respond(w, r, http.StatusForbidden, ErrorResponse{Error: "forbidden"})
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}
