package token_test

import (
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-product-admin/token"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

func TestDecode(t *testing.T) {
	t.Run("extracts name claims", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{
			"given_name":  "Jane",
			"family_name": "Doe",
		})

		identity, err := token.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, "Jane", identity.GivenName)
		require.Equal(t, "Doe", identity.FamilyName)
		require.Equal(t, "Jane Doe", identity.FullName())
	})

	t.Run("missing name claims yield empty identity", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"sub": "jane.doe"})

		identity, err := token.Decode(raw)
		require.NoError(t, err)
		require.Empty(t, identity.GivenName)
		require.Empty(t, identity.FullName())
	})

	t.Run("malformed token is an error, not a panic", func(t *testing.T) {
		_, err := token.Decode("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := token.Decode("")
		require.Error(t, err)
	})
}
