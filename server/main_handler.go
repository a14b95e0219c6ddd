package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-product-admin/permissions"
	"github.com/jrsteele09/go-product-admin/token"
)

// NavAction is one button on the main menu
type NavAction struct {
	Label string
	Href  string
}

// MainPageData contains data for rendering the main menu. A non-empty
// Welcome renders the one-time welcome dialog instead of the menu; the page
// refreshes itself back to the menu after WelcomeDelay seconds.
type MainPageData struct {
	AppName      string
	Welcome      string
	WelcomeDelay int
	Actions      []NavAction
}

var actionNav = map[permissions.Action]NavAction{
	permissions.ActionCreateProduct:  {Label: "New Product", Href: RouteProductNew},
	permissions.ActionSearchProduct:  {Label: "Search Product", Href: RouteProductSearch},
	permissions.ActionCreateCategory: {Label: "Add Category", Href: RouteCategoryNew},
	permissions.ActionAssignProduct:  {Label: "Add Product to Category", Href: RouteCategoryAssign},
	permissions.ActionListCategories: {Label: "List Categories", Href: RouteCategories},
	permissions.ActionLogout:         {Label: "Log out", Href: RouteAuthLogout},
}

// MainHandler renders the main menu (GET /main). On the first visit of a
// fresh session it shows the welcome message for the configured delay, then
// the menu; later visits render the menu directly.
func (s *Server) MainHandler() http.HandlerFunc {
	mainTmpl := MustParseTemplate("main.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		caps := permissions.ForRole(sess.IsAdmin)
		actions := make([]NavAction, 0, len(caps.Actions()))
		for _, action := range caps.Actions() {
			actions = append(actions, actionNav[action])
		}

		data := MainPageData{
			AppName: s.config.GetAppName(),
			Actions: actions,
		}

		if !sess.WelcomeShown {
			identity, err := token.Decode(sess.Token)
			if err != nil {
				// A malformed token still has a stored session; skip the
				// welcome instead of failing the page.
				log.Warn().Err(err).Msg("Failed to decode session token")
			} else if name := identity.FullName(); name != "" {
				data.Welcome = "Welcome, " + name + "!"
				data.WelcomeDelay = int(s.config.GetWelcomeDismissDelay().Seconds())
			}
			if err := s.sessions.MarkWelcomeShown(sess.ID); err != nil {
				log.Err(err).Msg("Failed to mark welcome message shown")
			}
		}

		renderPage(w, mainTmpl, data)
	}
}
