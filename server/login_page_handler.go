package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-product-admin/internal/errors"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Error    string
	Username string
	Password string
	Remember bool
}

// LoginPageHandler displays the login page (GET /). Remembered credentials
// prefill the form when the remember cookie is present.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl := MustParseTemplate("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			Error:    r.URL.Query().Get("error"),
			Username: r.URL.Query().Get("username"),
		}

		if cookie, err := r.Cookie(rememberCookieName); err == nil && cookie.Value != "" {
			if creds, err := s.sessions.Remembered(cookie.Value); err == nil {
				data.Username = creds.Username
				data.Password = creds.Password
				data.Remember = true
			}
		}

		renderPage(w, loginTmpl, data)
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")
		remember := r.FormValue("remember") == "on"

		// Validate input before any network call
		if username == "" || password == "" {
			s.renderLoginError(w, r, "Both username and password are required.", username)
			return
		}

		result, err := s.api.Login(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, errors.ErrFailedLogin) {
				s.renderLoginError(w, r, "Failed login attempt. Please try again", username)
				return
			}
			// Network failures are surfaced like any other login failure,
			// not just logged.
			log.Err(err).Msg("Login request failed")
			s.renderLoginError(w, r, "Login request failed. Please try again", username)
			return
		}

		sess, err := s.sessions.Create(result.Token, result.IsAdmin, result.Username)
		if err != nil {
			log.Err(err).Msg("Failed to store session")
			s.renderLoginError(w, r, "Login request failed. Please try again", username)
			return
		}
		s.setSessionCookie(w, sess.ID)

		// Remember-me side effect, independent of the session lifecycle
		rememberID := ""
		if cookie, err := r.Cookie(rememberCookieName); err == nil {
			rememberID = cookie.Value
		}
		if remember {
			id, err := s.sessions.Remember(rememberID, username, password)
			if err != nil {
				log.Err(err).Msg("Failed to store remembered credentials")
			} else {
				s.setRememberCookie(w, id)
			}
		} else {
			if err := s.sessions.ClearRemembered(rememberID); err != nil {
				log.Err(err).Msg("Failed to clear remembered credentials")
			}
			s.clearRememberCookie(w)
		}

		http.Redirect(w, r, RouteMain, http.StatusSeeOther)
	}
}

// LogoutHandler clears the session and returns to the login page. Purely
// local: no revocation call is made, and logging out without a session is a
// no-op.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			if err := s.sessions.Clear(cookie.Value); err != nil {
				log.Err(err).Msg("Failed to delete session")
			}
		}
		s.clearSessionCookie(w)
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// renderLoginError redirects to the login page with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username string) {
	redirectURL := RouteLogin + "?error=" + url.QueryEscape(errorMsg)
	if username != "" {
		redirectURL += "&username=" + url.QueryEscape(username)
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}
