package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey string

const (
	// SessionCookie is the cookie carrying the storefront session ID.
	SessionCookie = "sf_session"
	// SessionHeader lets non-browser clients pass the session ID explicitly.
	SessionHeader = "X-Session-Id"

	ctxKeySession ctxKey = "session_id"
)

// AttachSession resolves the caller's session ID (header, then cookie) and
// stores it in the request context, minting a fresh one for first-time
// visitors. Cart and identity state is keyed by this ID.
func AttachSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := r.Header.Get(SessionHeader)
		if sess == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				sess = c.Value
			}
		}
		if sess == "" {
			sess = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session ID attached by AttachSession.
func SessionID(ctx context.Context) string {
	sess, _ := ctx.Value(ctxKeySession).(string)
	return sess
}
