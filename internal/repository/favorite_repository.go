package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smokecodex/hookah-booking/internal/model"
)

// FavoriteRepo manages the favorites table. Adding a favorite is
// idempotent: the (user, venue) pair is unique and re-adding returns the
// stored row.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo constructs a FavoriteRepo given a DB handle.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Add marks a venue as a favorite of the user. When the pair already
// exists the existing row is returned unchanged.
func (r *FavoriteRepo) Add(ctx context.Context, userID, venueID uint64) (*model.Favorite, error) {
	if f, err := r.get(ctx, userID, venueID); err == nil {
		return f, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	const q = `INSERT INTO favorites (user_id, venue_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, userID, venueID); err != nil {
		// Lost a race against a concurrent Add for the same pair; the unique
		// key guarantees the row now exists, so read it back.
		if f, gerr := r.get(ctx, userID, venueID); gerr == nil {
			return f, nil
		}
		return nil, err
	}
	return r.get(ctx, userID, venueID)
}

// Remove deletes a favorite. It returns ErrFavoriteNotFound when the
// user has not favorited the venue.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, venueID uint64) error {
	const q = `DELETE FROM favorites WHERE user_id = ? AND venue_id = ?`
	res, err := r.db.ExecContext(ctx, q, userID, venueID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepo) get(ctx context.Context, userID, venueID uint64) (*model.Favorite, error) {
	const q = `SELECT id, user_id, venue_id, created_at FROM favorites WHERE user_id = ? AND venue_id = ?`
	var f model.Favorite
	err := r.db.QueryRowContext(ctx, q, userID, venueID).Scan(&f.ID, &f.UserID, &f.VenueID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
