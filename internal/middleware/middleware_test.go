package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/smokecodex/hookah-booking/internal/config"
	"github.com/smokecodex/hookah-booking/internal/utils"
)

func newEchoCtx(method, target string) (*echo.Echo, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	mw := JWTAuth("secret")
	_, c := newEchoCtx(http.MethodGet, "/bookings")

	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, c.Response().Status)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	at, err := utils.NewAccessToken("secret", 42, 15)
	assert.NoError(t, err)

	mw := JWTAuth("secret")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen interface{}
	err = mw(func(c echo.Context) error {
		seen = c.Get("user_id")
		return c.NoContent(http.StatusOK)
	})(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), seen) // numeric JWT claims decode as float64
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other", 42, 15)
	assert.NoError(t, err)

	mw := JWTAuth("secret")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBuildRateKey_Strategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_route"}
	_, c := newEchoCtx(http.MethodPost, "/bookings")
	c.SetPath("/bookings")
	c.Set("user_id", uint64(9))

	key := buildRateKey(cfg, c)
	assert.Contains(t, key, "user:9")
	assert.Contains(t, key, "POST /bookings")

	// Anonymous requests share a bucket.
	_, anon := newEchoCtx(http.MethodGet, "/venues")
	anon.SetPath("/venues")
	cfg.KeyStrategy = "user"
	assert.Contains(t, buildRateKey(cfg, anon), "anon")
}
