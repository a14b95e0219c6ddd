package token

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/jrsteele09/go-product-admin/internal/errors"
)

// Identity holds the display claims carried by the bearer token. The token
// is issued and verified by the remote API; this client only decodes it for
// display, it never validates the signature.
type Identity struct {
	GivenName  string
	FamilyName string
}

// FullName returns "GivenName FamilyName" for the welcome message.
func (i Identity) FullName() string {
	return strings.TrimSpace(i.GivenName + " " + i.FamilyName)
}

// Decode extracts the identity claims from a raw bearer token without
// verifying it. A pure, non-network operation; a malformed token yields an
// error instead of a panic.
func Decode(rawToken string) (Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Identity{}, errors.ErrNoSession
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Identity{}, errors.Wrapf(err, "[token Decode] parsing token")
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return Identity{}, errors.Wrapf(errors.ErrInternal, "[token Decode] unexpected claims type")
	}

	identity := Identity{}
	if givenName, ok := claims["given_name"].(string); ok {
		identity.GivenName = givenName
	}
	if familyName, ok := claims["family_name"].(string); ok {
		identity.FamilyName = familyName
	}
	return identity, nil
}
