package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestSessionCookieAttributes(t *testing.T) {
	cookies := NewSessionCookies(false)
	expiresAt := time.Now().Add(8 * time.Hour)

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		cookies.Set(c, "token-value", expiresAt)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	ck := findCookie(resp, CookieName)
	require.NotNil(t, ck)
	assert.Equal(t, "token-value", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.False(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, "/", ck.Path)
	assert.InDelta(t, int(8*time.Hour/time.Second), ck.MaxAge, 5)
}

func TestSessionCookieSecureInProduction(t *testing.T) {
	cookies := NewSessionCookies(true)

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		cookies.Set(c, "token-value", time.Now().Add(time.Hour))
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	ck := findCookie(resp, CookieName)
	require.NotNil(t, ck)
	assert.True(t, ck.Secure)
}

func TestSessionCookieClear(t *testing.T) {
	cookies := NewSessionCookies(false)

	app := fiber.New()
	app.Get("/clear", func(c *fiber.Ctx) error {
		cookies.Clear(c)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/clear", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	ck := findCookie(resp, CookieName)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.True(t, ck.MaxAge < 0 || ck.Expires.Before(time.Now()))
}

func TestCurrentPrincipalMissingCookie(t *testing.T) {
	tokens := NewTokenManager(testSecret, time.Hour)

	app := fiber.New()
	app.Get("/who", func(c *fiber.Ctx) error {
		_, ok := CurrentPrincipal(c, tokens)
		assert.False(t, ok)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/who", nil))
	require.NoError(t, err)
	resp.Body.Close()
}
