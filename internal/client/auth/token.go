package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Enfoirer/3D-building-generator/internal/client/models"
	"github.com/Enfoirer/3D-building-generator/internal/common"
)

// Credentials is the material returned by the identity provider: an identity
// token carrying the user's claims and, optionally, a short-lived access token.
type Credentials struct {
	IDToken     string
	AccessToken string
}

// BearerToken selects the token for outgoing calls: the access token when
// present, the identity token as fallback. With neither, the caller must not
// attempt the network call.
func (c Credentials) BearerToken() (string, error) {
	if c.AccessToken != "" {
		return c.AccessToken, nil
	}
	if c.IDToken != "" {
		return c.IDToken, nil
	}
	return "", common.ErrMissingCredentials
}

// identityClaims is the subset of identity-token claims the client reads.
// Field sources match what the backend itself extracts from the token.
type identityClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Picture  string `json:"picture"`
}

// IdentityFromToken derives the active Identity from the identity token's
// claims. The signature is not verified; the client holds no signing key and
// the backend re-validates the token on every request.
func IdentityFromToken(idToken string) (*models.Identity, error) {
	claims := &identityClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("parse identity token: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("identity token has no subject")
	}

	name := claims.Name
	if name == "" {
		name = claims.Nickname
	}
	if name == "" {
		name = claims.Email
	}

	return &models.Identity{
		ID:          claims.Subject,
		DisplayName: name,
		Email:       claims.Email,
		AvatarURL:   claims.Picture,
	}, nil
}

// tokenExpired reports whether the token's exp claim is in the past.
// A token that cannot be parsed counts as expired; a token without an exp
// claim never expires.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
