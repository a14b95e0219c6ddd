package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-product-admin/catalog"
	"github.com/jrsteele09/go-product-admin/internal/config"
	"github.com/jrsteele09/go-product-admin/productapi"
	"github.com/jrsteele09/go-product-admin/server"
	"github.com/jrsteele09/go-product-admin/session"
)

type testConfig struct {
	config.Config
	apiBaseURL string
}

func (c testConfig) GetAPIBaseURL() string { return c.apiBaseURL }
func (c testConfig) GetEnv() string        { return "TEST" }

type remoteAPI struct {
	server     *httptest.Server
	loginCalls int
}

// newRemoteAPI fakes the product manager service. jane.doe/Password1 is a
// regular account, admin/Password1 an administrator, and any other
// credentials fail. The catalogue holds a single product.
func newRemoteAPI(t *testing.T) *remoteAPI {
	t.Helper()
	remote := &remoteAPI{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		remote.loginCalls++
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds["password"] != "Password1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"given_name":  "Jane",
			"family_name": "Doe",
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]any{
			"token":    raw,
			"isAdmin":  creds["username"] == "admin",
			"username": creds["username"],
		})
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "Keyboard" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode([]catalog.Product{{ID: 1, Name: "Keyboard", SKU: "KB-1", Price: 49.5}})
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]catalog.Category{})
	})

	remote.server = httptest.NewServer(mux)
	t.Cleanup(remote.server.Close)
	return remote
}

func newTestServer(t *testing.T, apiBaseURL string) *server.Server {
	t.Helper()
	cfg := testConfig{Config: config.New(), apiBaseURL: apiBaseURL}
	sessions := session.NewManager(session.NewInMemoryRepo())
	return server.New(cfg, sessions, productapi.New(apiBaseURL))
}

func postForm(srv *server.Server, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func get(srv *server.Server, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *server.Server, username string) *http.Cookie {
	t.Helper()
	rec := postForm(srv, "/auth/login", url.Values{"username": {username}, "password": {"Password1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/main", rec.Header().Get("Location"))

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session_id" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLogin(t *testing.T) {
	t.Run("missing credentials rejected before any network call", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)

		rec := postForm(srv, "/auth/login", url.Values{"username": {"jane.doe"}, "password": {""}})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Contains(t, rec.Header().Get("Location"), url.QueryEscape("Both username and password are required."))
		require.Zero(t, remote.loginCalls)
	})

	t.Run("rejected credentials show a failed login message", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)

		rec := postForm(srv, "/auth/login", url.Values{"username": {"jane.doe"}, "password": {"wrong"}})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Contains(t, rec.Header().Get("Location"), url.QueryEscape("Failed login attempt. Please try again"))
	})

	t.Run("unreachable service surfaces an error instead of silence", func(t *testing.T) {
		remote := newRemoteAPI(t)
		remote.server.Close()
		srv := newTestServer(t, remote.server.URL)

		rec := postForm(srv, "/auth/login", url.Values{"username": {"jane.doe"}, "password": {"Password1"}})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Contains(t, rec.Header().Get("Location"), url.QueryEscape("Login request failed. Please try again"))
	})

	t.Run("successful login establishes a session", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)

		cookie := login(t, srv, "jane.doe")

		rec := get(srv, "/main", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSessionGate(t *testing.T) {
	t.Run("no session redirects to login", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)

		rec := get(srv, "/main")

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("stale cookie is cleared and redirected", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)

		rec := get(srv, "/products/search", &http.Cookie{Name: "session_id", Value: "gone"})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "session_id" {
				require.Empty(t, cookie.Value)
			}
		}
	})
}

func TestWelcomeMessage(t *testing.T) {
	t.Run("shown on first visit only", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)
		cookie := login(t, srv, "jane.doe")

		first := get(srv, "/main", cookie)
		require.Equal(t, http.StatusOK, first.Code)
		require.Contains(t, first.Body.String(), "Welcome, Jane Doe!")

		second := get(srv, "/main", cookie)
		require.Equal(t, http.StatusOK, second.Code)
		require.NotContains(t, second.Body.String(), "Welcome, Jane Doe!")
	})

	t.Run("fresh login shows it again", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)

		cookie := login(t, srv, "jane.doe")
		get(srv, "/main", cookie)

		cookie = login(t, srv, "jane.doe")
		rec := get(srv, "/main", cookie)
		require.Contains(t, rec.Body.String(), "Welcome, Jane Doe!")
	})
}

func TestLogout(t *testing.T) {
	remote := newRemoteAPI(t)
	srv := newTestServer(t, remote.server.URL)
	cookie := login(t, srv, "jane.doe")

	rec := get(srv, "/auth/logout", cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	// The stored session is gone, so the gate bounces the old cookie.
	rec = get(srv, "/main", cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	// Logging out again without a session is harmless.
	rec = get(srv, "/auth/logout")
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestPermissions(t *testing.T) {
	t.Run("catalogue management denied to regular accounts", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)
		cookie := login(t, srv, "jane.doe")

		for _, path := range []string{"/products/new", "/categories/new", "/categories/assign"} {
			rec := get(srv, path, cookie)
			require.Equal(t, http.StatusForbidden, rec.Code, path)
		}
	})

	t.Run("administrators can reach management pages", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)
		cookie := login(t, srv, "admin")

		rec := get(srv, "/products/new", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("main page lists only permitted actions", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)

		rec := get(srv, "/main", login(t, srv, "jane.doe"))
		require.NotContains(t, rec.Body.String(), "New Product")
		require.Contains(t, rec.Body.String(), "Search Product")

		rec = get(srv, "/main", login(t, srv, "admin"))
		require.Contains(t, rec.Body.String(), "New Product")
	})
}

func TestProductSearch(t *testing.T) {
	t.Run("hit renders the product", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)
		cookie := login(t, srv, "jane.doe")

		rec := get(srv, "/products/search?mode=name&q=Keyboard", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "KB-1")
	})

	t.Run("miss shows a not found message and an empty list", func(t *testing.T) {
		remote := newRemoteAPI(t)
		srv := newTestServer(t, remote.server.URL)
		cookie := login(t, srv, "jane.doe")

		rec := get(srv, "/products/search?mode=name&q=Nothing", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Product not found")
		require.NotContains(t, rec.Body.String(), "<tbody>")
	})
}

func TestRememberMe(t *testing.T) {
	remote := newRemoteAPI(t)
	srv := newTestServer(t, remote.server.URL)

	rec := postForm(srv, "/auth/login", url.Values{
		"username": {"jane.doe"},
		"password": {"Password1"},
		"remember": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var remember *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "remember_id" && cookie.Value != "" {
			remember = cookie
		}
	}
	require.NotNil(t, remember)

	// The login form is prefilled from the remembered credentials.
	page := get(srv, "/", remember)
	require.Equal(t, http.StatusOK, page.Code)
	require.Contains(t, page.Body.String(), `value="jane.doe"`)
	require.Contains(t, page.Body.String(), `value="Password1"`)

	// Logging in without the box ticked clears them again.
	rec = postForm(srv, "/auth/login", url.Values{
		"username": {"jane.doe"},
		"password": {"Password1"},
	}, remember)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page = get(srv, "/", remember)
	require.NotContains(t, page.Body.String(), `value="Password1"`)
}
