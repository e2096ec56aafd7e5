package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smokecodex/hookah-booking/internal/handler"
	"github.com/smokecodex/hookah-booking/internal/middleware"
)

// RegisterUser registers the authenticated endpoints: venue and room
// management, bookings, favorites and feed writes. All routes require a
// valid JWT; finer ownership checks (venue owner, booking owner) live in
// the handlers.
func RegisterUser(e *echo.Echo, v *handler.VenueHandler, b *handler.BookingHandler,
	f *handler.FavoriteHandler, p *handler.PostHandler, jwtSecret string) {
	g := e.Group("", middleware.JWTAuth(jwtSecret))

	// ---- Venues ----
	g.POST("/venues", v.Create)
	// Room creation is restricted to the venue owner inside the handler.
	g.POST("/venues/:id/rooms", v.CreateRoom)

	// ---- Bookings ----
	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.DELETE("/bookings/:id", b.Cancel)

	// ---- Favorites ----
	g.POST("/favorites/:venue_id", f.Add)
	g.GET("/favorites", f.List)
	g.DELETE("/favorites/:venue_id", f.Remove)

	// ---- Feed writes ----
	g.POST("/posts", p.CreatePost)
	g.POST("/posts/:id/like", p.Like)
	g.POST("/posts/:id/comments", p.CreateComment)
}
