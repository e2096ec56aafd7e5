package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/smokecodex/hookah-booking/internal/model"
)

// RoomRepo encapsulates database operations for rooms. Rooms are
// read-only reference data for the booking path; only venue owners
// create them.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo given a DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new room under a venue and populates the generated ID.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (venue_id, name, capacity, hourly_price, is_private) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.VenueID, room.Name, room.Capacity, room.HourlyPrice, room.IsPrivate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// GetByID fetches a room by id. It returns ErrRoomNotFound when no row
// exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, venue_id, name, capacity, hourly_price, is_private FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.VenueID, &room.Name, &room.Capacity, &room.HourlyPrice, &room.IsPrivate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// RoomFilter narrows the room listing of a venue. Capacity filters for
// rooms that hold at least that many guests; IsPrivate filters for
// private (or shared) rooms when set.
type RoomFilter struct {
	Capacity  *uint32
	IsPrivate *bool
}

// ListByVenue returns the rooms of a venue matching the filter, ordered
// by id for deterministic output.
func (r *RoomRepo) ListByVenue(ctx context.Context, venueID uint64, f RoomFilter) ([]*model.Room, error) {
	q := `SELECT id, venue_id, name, capacity, hourly_price, is_private FROM rooms WHERE venue_id = ?`
	args := []interface{}{venueID}
	conds := make([]string, 0, 2)
	if f.Capacity != nil {
		conds = append(conds, "capacity >= ?")
		args = append(args, *f.Capacity)
	}
	if f.IsPrivate != nil {
		conds = append(conds, "is_private = ?")
		args = append(args, *f.IsPrivate)
	}
	if len(conds) > 0 {
		q += " AND " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Room, 0)
	for rows.Next() {
		room := new(model.Room)
		if err := rows.Scan(&room.ID, &room.VenueID, &room.Name,
			&room.Capacity, &room.HourlyPrice, &room.IsPrivate); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
