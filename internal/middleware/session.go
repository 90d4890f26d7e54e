package middleware

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/session"

	"github.com/rs/zerolog"
)

type sessionCtxKey struct{}

// SessionFromContext returns the request's session, or nil when the session
// middleware is not installed on the route.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*session.Session)
	return sess
}

// Session loads the client's session from the store using the session cookie,
// creating a fresh session (and setting the cookie) when none exists. After
// the handler runs, a dirty session is flushed back to the store; untouched
// sessions are never written.
func Session(store session.Store, cookieName string, ttl time.Duration, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("middleware", "session").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session

			if cookie, err := r.Cookie(cookieName); err == nil {
				loaded, err := store.Load(r.Context(), cookie.Value)
				if err != nil {
					logger.Warn().Err(err).Msg("failed to load session, starting a fresh one")
				}
				sess = loaded
			}

			if sess == nil {
				sess = session.New()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sess.ID(),
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			if sess.Dirty() {
				if err := store.Save(r.Context(), sess); err != nil {
					logger.Error().Err(err).Str("session_id", sess.ID()).Msg("failed to save session")
				}
			}
		})
	}
}
