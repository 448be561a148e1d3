package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName carries the session token on every request.
const CookieName = "redime-auth-token"

const principalKey = "auth_principal"

// SessionCookies writes and clears the session cookie with the attributes
// the token contract requires: HTTP-only, SameSite=Lax, path /, Secure in
// production, max-age bound to the token's validity window.
type SessionCookies struct {
	secure bool
}

// NewSessionCookies builds the cookie helper. secure should be true only in
// a production profile.
func NewSessionCookies(secure bool) *SessionCookies {
	return &SessionCookies{secure: secure}
}

// Set attaches the session cookie to the response.
func (sc *SessionCookies) Set(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HTTPOnly: true,
		Secure:   sc.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// Clear expires the session cookie. Idempotent: clearing with no active
// session is not an error.
func (sc *SessionCookies) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   sc.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// CurrentPrincipal reads the session cookie and verifies it. This is the
// only entry point downstream code should use to learn who is calling.
func CurrentPrincipal(c *fiber.Ctx, tokens *TokenManager) (*Claims, bool) {
	token := c.Cookies(CookieName)
	if token == "" {
		return nil, false
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// PrincipalFromContext retrieves claims stored by the guard or RequireSession.
func PrincipalFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

func storePrincipal(c *fiber.Ctx, claims *Claims) {
	c.Locals(principalKey, claims)
}
