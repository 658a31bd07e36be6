package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/artkeeper/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// userIDFromContext extracts the authenticated user id injected by
// requireAuth. The second return is false on unguarded routes.
func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// requireAuth guards a route subtree: it extracts the bearer token from the
// Authorization header, verifies it, and injects the resolved user id into
// the request context. Missing, malformed, expired, and tampered tokens all
// short-circuit with the same 401 response; the downstream handler is never
// invoked. Every request is verified independently; there is no session
// state.
func (s *RestServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
