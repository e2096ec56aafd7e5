package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/smokecodex/hookah-booking/internal/model"
)

// BookingRepo provides the write and read paths for bookings. The write
// path is the conflict guard: for a fixed room, active bookings must be
// pairwise non-overlapping, and the check-then-insert sequence must hold
// under concurrent writers. MySQL has no exclusion constraints, so the
// guard serializes writers per room by locking the room row with
// SELECT ... FOR UPDATE for the duration of the transaction. Writers for
// different rooms do not contend. All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can ping it for health
// checks.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = "id, user_id, room_id, start_time, end_time, status, created_at"

// CreateActive atomically checks the half-open interval [start, end)
// against all active bookings of the room and inserts a new active
// booking when the interval is free. The sequence runs inside a single
// transaction:
//
//  1. lock the room row (FOR UPDATE) — serializes concurrent writers on
//     the same room and doubles as the existence check;
//  2. count active bookings satisfying end_time > start AND
//     start_time < end — strict inequalities, so bookings touching at an
//     endpoint do not conflict;
//  3. insert the row and read it back.
//
// On any failure the transaction is rolled back and no row is inserted.
// Errors: ErrRoomNotFound, ErrInvalidInterval, ErrSlotTaken.
func (r *BookingRepo) CreateActive(ctx context.Context, userID, roomID uint64, start, end time.Time) (*model.Booking, error) {
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}
	start = start.UTC()
	end = end.UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the room row. Every booking writer for this room takes the same
	// lock, so the overlap check below cannot race with another insert.
	const lockQ = `SELECT id FROM rooms WHERE id = ? FOR UPDATE`
	var lockedID uint64
	if err := tx.QueryRowContext(ctx, lockQ, roomID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	// Half-open overlap predicate: [a,b) and [c,d) overlap iff a < d && c < b.
	const overlapQ = `SELECT COUNT(*) FROM bookings
	                  WHERE room_id = ? AND status = ? AND end_time > ? AND start_time < ?`
	var overlapping int
	if err := tx.QueryRowContext(ctx, overlapQ, roomID, model.BookingStatusActive, start, end).Scan(&overlapping); err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrSlotTaken
	}

	const insQ = `INSERT INTO bookings (user_id, room_id, start_time, end_time, status) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insQ, userID, roomID, start, end, model.BookingStatusActive)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// Query back the full row to populate timestamps and defaults
	const selQ = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(tx.QueryRowContext(ctx, selQ, uint64(id)))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// Cancel transitions a booking to cancelled on behalf of its owner and
// returns the updated row. The transition is one-way; re-cancelling an
// already cancelled booking simply yields the same terminal state.
// Errors: ErrBookingNotFound, ErrForbidden.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	const ownerQ = `SELECT user_id FROM bookings WHERE id = ?`
	var ownerID uint64
	if err := r.db.QueryRowContext(ctx, ownerQ, bookingID).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}
	const updQ = `UPDATE bookings SET status = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, updQ, model.BookingStatusCancelled, bookingID); err != nil {
		return nil, err
	}
	const selQ = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(r.db.QueryRowContext(ctx, selQ, bookingID))
}

// GetByID fetches a booking by id. It returns ErrBookingNotFound when no
// row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByUser returns the caller's own bookings, optionally filtered by
// exact status, ordered by start time descending (most recent first).
// Other users' bookings are never returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, status string) ([]*model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ?`
	args := []interface{}{userID}
	if status != "" {
		q += " AND status = ?"
		args = append(args, status)
	}
	q += " ORDER BY start_time DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanBooking(s scanner) (*model.Booking, error) {
	var b model.Booking
	if err := s.Scan(&b.ID, &b.UserID, &b.RoomID, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}
