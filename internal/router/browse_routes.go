package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smokecodex/hookah-booking/internal/handler"
)

// RegisterBrowse registers the unauthenticated browse endpoints: venue
// listings, venue detail, room listings and the public parts of the
// social feed. These routes do not apply any JWT middleware and are
// intended for guest users. The optional cache middleware is applied
// here because browse responses tolerate short staleness.
func RegisterBrowse(e *echo.Echo, v *handler.VenueHandler, p *handler.PostHandler, cache echo.MiddlewareFunc) {
	g := e.Group("")
	if cache != nil {
		g.Use(cache)
	}
	// Venue catalogue with filters (search, city, min_price, max_price, has_vip).
	g.GET("/venues", v.List)
	g.GET("/venues/:id", v.Get)
	// Rooms of a venue with filters (capacity, is_private).
	g.GET("/venues/:id/rooms", v.ListRooms)
	// Public feed reads.
	g.GET("/users/:id/posts", p.ListByAuthor)
	g.GET("/posts/:id/comments", p.ListComments)
}
