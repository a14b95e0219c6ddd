package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-product-admin/permissions"
)

func TestForRole(t *testing.T) {
	t.Run("non-administrator gets only the common set", func(t *testing.T) {
		p := permissions.ForRole(false)
		require.False(t, p.CanManageCatalog)
		require.Equal(t, []permissions.Action{
			permissions.ActionSearchProduct,
			permissions.ActionListCategories,
			permissions.ActionLogout,
		}, p.Actions())
	})

	t.Run("administrator gets the catalog management actions", func(t *testing.T) {
		p := permissions.ForRole(true)
		require.True(t, p.CanManageCatalog)
		require.True(t, p.Allows(permissions.ActionCreateProduct))
		require.True(t, p.Allows(permissions.ActionCreateCategory))
		require.True(t, p.Allows(permissions.ActionAssignProduct))
		require.True(t, p.Allows(permissions.ActionSearchProduct))
	})

	t.Run("non-administrator is denied management actions", func(t *testing.T) {
		p := permissions.ForRole(false)
		require.False(t, p.Allows(permissions.ActionCreateProduct))
		require.False(t, p.Allows(permissions.ActionCreateCategory))
		require.False(t, p.Allows(permissions.ActionAssignProduct))
	})

	t.Run("pure function of the role flag", func(t *testing.T) {
		// Same input, same visible-action set, regardless of call order.
		first := permissions.ForRole(true).Actions()
		permissions.ForRole(false)
		second := permissions.ForRole(true).Actions()
		require.Equal(t, first, second)
	})
}
