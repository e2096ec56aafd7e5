package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smokecodex/hookah-booking/internal/repository"
)

// FavoriteHandler serves the caller's saved venues.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Venues    *repository.VenueRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo, v *repository.VenueRepo) *FavoriteHandler {
	return &FavoriteHandler{Favorites: f, Venues: v}
}

type favoriteResp struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	VenueID   uint64    `json:"venue_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Add saves a venue. Re-adding an existing favorite returns the stored
// row with the same 201. POST /favorites/:venue_id
func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, err := strconv.ParseUint(c.Param("venue_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	f, err := h.Favorites.Add(ctx, uid, venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add favorite failed"})
	}
	return c.JSON(http.StatusCreated, favoriteResp{
		ID:        f.ID,
		UserID:    f.UserID,
		VenueID:   f.VenueID,
		CreatedAt: f.CreatedAt,
	})
}

// List returns the venues the caller has favorited. GET /favorites
func (h *FavoriteHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	venues, err := h.Venues.ListFavoritesOf(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]venueResp, 0, len(venues))
	for _, v := range venues {
		out = append(out, toVenueResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": out})
}

// Remove deletes a favorite. DELETE /favorites/:venue_id
func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, err := strconv.ParseUint(c.Param("venue_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Favorites.Remove(ctx, uid, venueID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove favorite failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
