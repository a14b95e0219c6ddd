package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-product-admin/permissions"
	"github.com/jrsteele09/go-product-admin/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the authenticated session
const ContextKeySession ContextKey = "session"

// RequireSession is the session gate: every protected view reads the
// session store before rendering. Without a session the protected content
// never renders; the browser is sent back to the login page.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}

			sess, err := s.sessions.Get(cookie.Value)
			if err != nil {
				// Stale cookie without a stored session
				s.clearSessionCookie(w)
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, sess)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequirePermission restricts a route to sessions whose capability set
// exposes the action. Chain after RequireSession.
func (s *Server) RequirePermission(action permissions.Action) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}
			if !permissions.ForRole(sess.IsAdmin).Allows(action) {
				http.Error(w, "403 - Forbidden", http.StatusForbidden)
				return
			}
			next(w, r)
		}
	}
}

// SessionFromContext returns the session injected by RequireSession.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ContextKeySession).(session.Session)
	return sess, ok
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) setRememberCookie(w http.ResponseWriter, rememberID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     rememberCookieName,
		Value:    rememberID,
		Path:     "/",
		MaxAge:   int(s.config.GetRememberCookieMaxAge().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearRememberCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     rememberCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
