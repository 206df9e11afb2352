package api

import (
	"context"
	"net/http"

	"github.com/example/storefront/internal/session"
)

const sessionCookie = "storefront_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// withSession resolves the session cookie, issuing a fresh signed token when
// the cookie is missing, invalid or expired.
func withSession(tokens *session.TokenService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			sid, _ = tokens.Validate(cookie.Value)
		}
		if sid == "" {
			token, newSID, expiresAt, err := tokens.Issue()
			if err != nil {
				http.Error(w, "Failed to start session", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    token,
				Path:     "/",
				Expires:  expiresAt,
				HttpOnly: true,
			})
			sid = newSID
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	if sid, ok := r.Context().Value(sessionIDKey).(string); ok {
		return sid
	}
	return ""
}
