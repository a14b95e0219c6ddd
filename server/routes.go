package server

import (
	"github.com/jrsteele09/go-product-admin/permissions"
)

func (s *Server) initRoutes() {
	// LOGIN & REGISTRATION
	s.RegisterRouteFunc("GET "+RouteLogin, s.LoginPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthLogin, s.LoginSubmissionHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())
	s.RegisterRouteFunc("GET "+RouteRegister, s.RegisterPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthRegister, s.RegisterSubmissionHandler())

	// Protected routes (require a session; unauthenticated requests are
	// redirected to the login page)
	s.RegisterRouteHandler("GET "+RouteMain, ChainMiddleware(s.MainHandler(), s.HTMLMiddleWare(s.RequireSession())...))

	s.RegisterRouteHandler("GET "+RouteProductSearch, ChainMiddleware(s.ProductSearchHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteCategories, ChainMiddleware(s.CategoriesHandler(), s.HTMLMiddleWare(s.RequireSession())...))

	// Administrator-only routes
	s.RegisterRouteHandler("GET "+RouteProductNew,
		ChainMiddleware(s.ProductNewPageHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionCreateProduct))...))
	s.RegisterRouteHandler("POST "+RouteProductNew,
		ChainMiddleware(s.ProductNewSubmissionHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionCreateProduct))...))
	s.RegisterRouteHandler("GET "+RouteProductEdit,
		ChainMiddleware(s.ProductEditPageHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionCreateProduct))...))
	s.RegisterRouteHandler("POST "+RouteProductEdit,
		ChainMiddleware(s.ProductEditSubmissionHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionCreateProduct))...))
	s.RegisterRouteHandler("GET "+RouteProductDelete,
		ChainMiddleware(s.ProductDeletePageHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionCreateProduct))...))
	s.RegisterRouteHandler("POST "+RouteProductDelete,
		ChainMiddleware(s.ProductDeleteSubmissionHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionCreateProduct))...))
	s.RegisterRouteHandler("GET "+RouteCategoryNew,
		ChainMiddleware(s.CategoryNewPageHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionCreateCategory))...))
	s.RegisterRouteHandler("POST "+RouteCategoryNew,
		ChainMiddleware(s.CategoryNewSubmissionHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionCreateCategory))...))
	s.RegisterRouteHandler("GET "+RouteCategoryAssign,
		ChainMiddleware(s.CategoryAssignPageHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionAssignProduct))...))
	s.RegisterRouteHandler("POST "+RouteCategoryAssign,
		ChainMiddleware(s.CategoryAssignSubmissionHandler(), s.HTMLMiddleWare(s.RequireSession(), s.RequirePermission(permissions.ActionAssignProduct))...))
}
