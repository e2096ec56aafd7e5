package model

import "time"

// Venue represents a hookah lounge listed by its owner. Venues group one
// or more bookable rooms and can be favorited by users.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the venue owner.
//  Name        – display name of the lounge.
//  Description – optional free-form description.
//  City        – city the lounge is located in.
//  Address     – street address.
//  Phone       – optional contact phone number.
//  MinPrice    – optional lower bound of the price range.
//  MaxPrice    – optional upper bound of the price range.
//  HasVIP      – whether the lounge offers VIP rooms.
//  CreatedAt   – creation timestamp.
type Venue struct {
	ID          uint64    // venues.id
	OwnerID     uint64    // venues.owner_id
	Name        string    // venues.name
	Description *string   // venues.description (nullable)
	City        string    // venues.city
	Address     string    // venues.address
	Phone       *string   // venues.phone (nullable)
	MinPrice    *int32    // venues.min_price (nullable)
	MaxPrice    *int32    // venues.max_price (nullable)
	HasVIP      bool      // venues.has_vip
	CreatedAt   time.Time // venues.created_at
}

// Room is a bookable space inside a venue. Rooms are immutable for
// booking purposes: the conflict guard only ever reads them.
//
// Fields:
//  ID          – primary key identifier.
//  VenueID     – venue the room belongs to.
//  Name        – room name unique within the venue by convention.
//  Capacity    – number of guests the room accommodates.
//  HourlyPrice – price per hour in minor currency units.
//  IsPrivate   – whether the room is a private (VIP) space.
type Room struct {
	ID          uint64 // rooms.id
	VenueID     uint64 // rooms.venue_id
	Name        string // rooms.name
	Capacity    uint32 // rooms.capacity
	HourlyPrice uint32 // rooms.hourly_price
	IsPrivate   bool   // rooms.is_private
}
