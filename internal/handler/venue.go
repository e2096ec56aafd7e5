package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smokecodex/hookah-booking/internal/model"
	"github.com/smokecodex/hookah-booking/internal/repository"
)

// VenueHandler serves venue and room endpoints. Listing and detail routes
// are public; creation requires authentication, and room creation is
// restricted to the venue owner.
type VenueHandler struct {
	Venues *repository.VenueRepo
	Rooms  *repository.RoomRepo
}

func NewVenueHandler(v *repository.VenueRepo, r *repository.RoomRepo) *VenueHandler {
	return &VenueHandler{Venues: v, Rooms: r}
}

type createVenueReq struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	City        string  `json:"city" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Phone       *string `json:"phone"`
	MinPrice    *int32  `json:"min_price"`
	MaxPrice    *int32  `json:"max_price"`
	HasVIP      bool    `json:"has_vip"`
}

type venueResp struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Phone       *string   `json:"phone"`
	MinPrice    *int32    `json:"min_price"`
	MaxPrice    *int32    `json:"max_price"`
	HasVIP      bool      `json:"has_vip"`
	CreatedAt   time.Time `json:"created_at"`
}

func toVenueResp(v *model.Venue) venueResp {
	return venueResp{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Name:        v.Name,
		Description: v.Description,
		City:        v.City,
		Address:     v.Address,
		Phone:       v.Phone,
		MinPrice:    v.MinPrice,
		MaxPrice:    v.MaxPrice,
		HasVIP:      v.HasVIP,
		CreatedAt:   v.CreatedAt,
	}
}

// Create registers a new venue owned by the caller. POST /venues
func (h *VenueHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, city and address required"})
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "min_price exceeds max_price"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := &model.Venue{
		OwnerID:     uid,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		City:        strings.TrimSpace(req.City),
		Address:     strings.TrimSpace(req.Address),
		Phone:       req.Phone,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		HasVIP:      req.HasVIP,
	}
	if err := h.Venues.Create(ctx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	return c.JSON(http.StatusCreated, toVenueResp(v))
}

// List returns venues matching the query filters. GET /venues
func (h *VenueHandler) List(c echo.Context) error {
	f := repository.VenueFilter{
		Search: c.QueryParam("search"),
		City:   c.QueryParam("city"),
	}
	if s := c.QueryParam("min_price"); s != "" {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
		}
		p := int32(n)
		f.MinPrice = &p
	}
	if s := c.QueryParam("max_price"); s != "" {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		p := int32(n)
		f.MaxPrice = &p
	}
	if s := c.QueryParam("has_vip"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid has_vip"})
		}
		f.HasVIP = &b
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	venues, err := h.Venues.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]venueResp, 0, len(venues))
	for _, v := range venues {
		out = append(out, toVenueResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": out})
}

// Get returns one venue. GET /venues/:id
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toVenueResp(v))
}

type createRoomReq struct {
	Name        string `json:"name" validate:"required"`
	Capacity    uint32 `json:"capacity" validate:"required,gt=0"`
	HourlyPrice uint32 `json:"hourly_price"`
	IsPrivate   bool   `json:"is_private"`
}

type roomResp struct {
	ID          uint64 `json:"id"`
	VenueID     uint64 `json:"venue_id"`
	Name        string `json:"name"`
	Capacity    uint32 `json:"capacity"`
	HourlyPrice uint32 `json:"hourly_price"`
	IsPrivate   bool   `json:"is_private"`
}

func toRoomResp(r *model.Room) roomResp {
	return roomResp{
		ID:          r.ID,
		VenueID:     r.VenueID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		HourlyPrice: r.HourlyPrice,
		IsPrivate:   r.IsPrivate,
	}
}

// CreateRoom adds a room to a venue the caller owns. POST /venues/:id/rooms
func (h *VenueHandler) CreateRoom(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and positive capacity required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if v.OwnerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the venue owner"})
	}

	room := &model.Room{
		VenueID:     venueID,
		Name:        strings.TrimSpace(req.Name),
		Capacity:    req.Capacity,
		HourlyPrice: req.HourlyPrice,
		IsPrivate:   req.IsPrivate,
	}
	if err := h.Rooms.Create(ctx, room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// ListRooms returns the rooms of a venue. GET /venues/:id/rooms
func (h *VenueHandler) ListRooms(c echo.Context) error {
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	f := repository.RoomFilter{}
	if s := c.QueryParam("capacity"); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid capacity"})
		}
		cap32 := uint32(n)
		f.Capacity = &cap32
	}
	if s := c.QueryParam("is_private"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid is_private"})
		}
		f.IsPrivate = &b
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rooms, err := h.Rooms.ListByVenue(ctx, venueID, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}
