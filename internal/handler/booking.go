package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smokecodex/hookah-booking/internal/model"
	"github.com/smokecodex/hookah-booking/internal/queue"
	"github.com/smokecodex/hookah-booking/internal/repository"
	queue_publisher "github.com/smokecodex/hookah-booking/internal/service"
)

// BookingHandler serves the booking endpoints. Creation delegates the
// conflict check to the repository's locking transaction; the handler only
// parses input, maps errors to statuses and publishes the domain event.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Venues   *repository.VenueRepo
}

func NewBookingHandler(b *repository.BookingRepo, r *repository.RoomRepo, v *repository.VenueRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Rooms: r, Venues: v}
}

type createBookingReq struct {
	RoomID    uint64    `json:"room_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type bookingResp struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	RoomID    uint64    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

// Create books a room for a half-open interval. POST /bookings
//
// Status mapping: 404 unknown room, 400 invalid interval, 400 when the
// slot overlaps an active booking, 201 on success.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id, start_time and end_time required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.CreateActive(ctx, uid, req.RoomID, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrInvalidInterval):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be before end_time"})
		case errors.Is(err, repository.ErrSlotTaken):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "time slot already booked"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
		}
	}

	// Publish best-effort; a broker outage never fails the booking.
	go h.publishCreated(*b)

	return c.JSON(http.StatusCreated, toBookingResp(b))
}

func (h *BookingHandler) publishCreated(b model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.BookingCreatedEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		StartTime: b.StartTime.Format(time.RFC3339),
		EndTime:   b.EndTime.Format(time.RFC3339),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
	if room, err := h.Rooms.GetByID(ctx, b.RoomID); err == nil {
		ev.RoomName = room.Name
		ev.VenueID = room.VenueID
		if venue, err := h.Venues.GetByID(ctx, room.VenueID); err == nil {
			ev.VenueName = venue.Name
		}
	}
	_ = queue_publisher.PublishBookingCreated(ctx, ev)
}

// List returns the caller's bookings, optionally filtered by status.
// GET /bookings?status=active|cancelled
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := c.QueryParam("status")
	if status != "" && status != model.BookingStatusActive && status != model.BookingStatusCancelled {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be active or cancelled"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, uid, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Cancel transitions the caller's booking to cancelled and returns the
// updated row. DELETE /bookings/:id
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.Cancel(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
	}

	go func(b model.Booking) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingCancelled(ctx, queue.BookingCancelledEvent{
			BookingID:   b.ID,
			UserID:      b.UserID,
			RoomID:      b.RoomID,
			StartTime:   b.StartTime.Format(time.RFC3339),
			EndTime:     b.EndTime.Format(time.RFC3339),
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}(*b)

	return c.JSON(http.StatusOK, toBookingResp(b))
}
