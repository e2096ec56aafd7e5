// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrSlotTaken signals that a proposed booking interval
// overlaps an existing active booking.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrSlotTaken is returned by the booking conflict guard when an active
// booking already overlaps the requested interval. Handlers translate
// this into HTTP 400 with a "time slot already booked" message; the
// caller may resubmit with a different interval.
var ErrSlotTaken = errors.New("time slot already booked")

// ErrInvalidInterval is returned when a booking interval has zero or
// negative duration (end <= start).
var ErrInvalidInterval = errors.New("invalid booking interval")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// Not-found sentinels, one per aggregate. Handlers translate these into
// HTTP 404.
var (
	ErrVenueNotFound    = errors.New("venue not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
)
