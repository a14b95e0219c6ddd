package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login, Registration & Logout
	RouteLogin        = "/"
	RouteAuthLogin    = "/auth/login"
	RouteAuthLogout   = "/auth/logout"
	RouteRegister     = "/register"
	RouteAuthRegister = "/auth/register"

	// Main menu (protected landing page)
	RouteMain = "/main"

	// Product Routes
	RouteProductSearch = "/products/search"
	RouteProductNew    = "/products/new"
	RouteProductEdit   = "/products/{sku}/edit"
	RouteProductDelete = "/products/{sku}/delete"

	// Category Routes
	RouteCategories     = "/categories"
	RouteCategoryNew    = "/categories/new"
	RouteCategoryAssign = "/categories/assign"
)

// Cookie names
const (
	sessionCookieName  = "session_id"
	rememberCookieName = "remember_id"
)
