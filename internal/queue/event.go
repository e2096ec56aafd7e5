// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is successfully created.
// It carries enough information for downstream consumers to log, notify, or
// feed analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	RoomID    uint64 `json:"room_id"`
	VenueID   uint64 `json:"venue_id"`
	VenueName string `json:"venue_name"`
	RoomName  string `json:"room_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
}

// BookingCancelledEvent is published when a booking transitions to
// cancelled.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	RoomID      uint64 `json:"room_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CancelledAt string `json:"cancelled_at"`
}
