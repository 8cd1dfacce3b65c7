package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/daralkutub/storefront/internal/service/admin"
)

type contextKey string

const sessionContextKey contextKey = "storefront_session"

// SessionCookieName carries the anonymous browsing-session id. The cookie is
// issued on first touch and pins the customer to one server-side cart.
const SessionCookieName = "storefront_session"

const sessionCookieMaxAge = 30 * 24 * 60 * 60

// SessionMiddleware guarantees every request downstream carries a session id.
// A missing or empty cookie gets a fresh uuid, set on both the response and
// the request context so the same request already sees it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			sessionID = cookie.Value
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   sessionCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionContextKey).(string); ok {
		return id
	}
	return ""
}

// AdminAuthMiddleware rejects requests that do not carry a valid bearer token
// issued by the session manager.
func AdminAuthMiddleware(sessions *admin.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			if err := sessions.Verify(token); err != nil {
				respondDomainError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
