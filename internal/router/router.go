package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/smokecodex/hookah-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/smokecodex/hookah-booking/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// This endpoint can be used by load balancers or monitoring systems to
	// verify that the service is up and running.
	e.GET("/health", handler.Health)
}

// RegisterAuth registers all authentication-related routes and their
// middleware. The provided AuthHandler implements the logic for each
// endpoint, and the jwtSecret is used to sign and verify JWT tokens for
// protected routes. Unauthenticated operations live under /auth, while
// the profile endpoints live under /users/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, p *handler.ProfileHandler, jwtSecret string) {
	// Token exchange endpoints do not require an existing session.
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotate the refresh token and return a fresh pair.
	g.POST("/refresh", a.Refresh)
	// Issue a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revoke all sessions) or a JSON
	// body with a refresh_token (revoke one session).
	g.POST("/logout", a.Logout)

	// The profile endpoints require a valid access token.
	me := e.Group("/users/me", middleware.JWTAuth(jwtSecret))
	me.GET("", p.Me)
	me.PATCH("", p.Update)
}
