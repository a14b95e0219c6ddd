package permissions

// Action is a navigation action the main view can expose.
type Action string

const (
	ActionSearchProduct  Action = "search-product"
	ActionListCategories Action = "list-categories"
	ActionLogout         Action = "logout"

	// Administrator-only actions
	ActionCreateProduct  Action = "create-product"
	ActionCreateCategory Action = "create-category"
	ActionAssignProduct  Action = "associate-product-to-category"
)

// Permissions is the capability set computed once per session from the role
// flag, passed to views instead of re-deriving an admin boolean everywhere.
type Permissions struct {
	CanManageCatalog bool
}

// ForRole derives the capability set from the role flag. A pure function:
// the role is immutable for the session's lifetime, so this is evaluated
// fresh on every render with no caching.
func ForRole(isAdmin bool) Permissions {
	return Permissions{CanManageCatalog: isAdmin}
}

// Actions returns the navigation actions visible for this capability set,
// in display order.
func (p Permissions) Actions() []Action {
	if !p.CanManageCatalog {
		return []Action{ActionSearchProduct, ActionListCategories, ActionLogout}
	}
	return []Action{
		ActionCreateProduct,
		ActionSearchProduct,
		ActionCreateCategory,
		ActionAssignProduct,
		ActionListCategories,
		ActionLogout,
	}
}

// Allows reports whether the action is exposed for this capability set.
func (p Permissions) Allows(action Action) bool {
	for _, a := range p.Actions() {
		if a == action {
			return true
		}
	}
	return false
}
