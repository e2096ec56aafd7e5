package model

import "time"

// Booking statuses. A booking is created active and can only transition to
// cancelled; the transition is one-way and idempotent. Rows are never
// physically deleted.
const (
	BookingStatusActive    = "active"
	BookingStatusCancelled = "cancelled"
)

// Booking records a user's reservation of a room for a half-open time
// interval [StartTime, EndTime). For a fixed room the set of active
// bookings is pairwise non-overlapping; the repository enforces this
// inside a locking transaction.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who made the booking; only they may cancel it.
//  RoomID    – room being reserved.
//  StartTime – inclusive start instant (UTC).
//  EndTime   – exclusive end instant (UTC); bookings touching at an
//              endpoint do not conflict.
//  Status    – "active" or "cancelled".
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	RoomID    uint64    // bookings.room_id
	StartTime time.Time // bookings.start_time
	EndTime   time.Time // bookings.end_time
	Status    string    // bookings.status
	CreatedAt time.Time // bookings.created_at
}
