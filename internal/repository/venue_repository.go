package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/smokecodex/hookah-booking/internal/model"
)

// VenueRepo encapsulates all database queries related to venues. It
// depends on a sql.DB connection configured at startup.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = "id, owner_id, name, description, city, address, phone, min_price, max_price, has_vip, created_at"

// Create inserts a new venue. On success the venue's ID and CreatedAt
// fields are populated from the stored row.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (owner_id, name, description, city, address, phone, min_price, max_price, has_vip)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.OwnerID, v.Name, v.Description, v.City, v.Address, v.Phone, v.MinPrice, v.MaxPrice, v.HasVIP)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	stored, err := r.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = *stored
	return nil
}

// GetByID fetches a venue by its ID regardless of owner. It returns
// ErrVenueNotFound if no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = "SELECT " + venueColumns + " FROM venues WHERE id = ?"
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// VenueFilter narrows the venue listing. Zero values mean "no filter".
// Search matches name or description case-insensitively; MinPrice and
// MaxPrice bound the venue's advertised price range, treating a venue
// with no advertised bound as always matching.
type VenueFilter struct {
	Search   string
	City     string
	MinPrice *int32
	MaxPrice *int32
	HasVIP   *bool
}

// List returns venues matching the filter ordered by creation time
// descending (newest first).
func (r *VenueRepo) List(ctx context.Context, f VenueFilter) ([]*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues"
	conds := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if s := strings.TrimSpace(f.Search); s != "" {
		conds = append(conds, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		like := "%" + strings.ToLower(s) + "%"
		args = append(args, like, like)
	}
	if c := strings.TrimSpace(f.City); c != "" {
		conds = append(conds, "LOWER(city) = ?")
		args = append(args, strings.ToLower(c))
	}
	if f.MinPrice != nil {
		conds = append(conds, "(min_price IS NULL OR min_price >= ?)")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "(max_price IS NULL OR max_price <= ?)")
		args = append(args, *f.MaxPrice)
	}
	if f.HasVIP != nil {
		conds = append(conds, "has_vip = ?")
		args = append(args, *f.HasVIP)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(s scanner) (*model.Venue, error) {
	var (
		v                  model.Venue
		desc, phone        sql.NullString
		minPrice, maxPrice sql.NullInt32
	)
	if err := s.Scan(&v.ID, &v.OwnerID, &v.Name, &desc, &v.City, &v.Address,
		&phone, &minPrice, &maxPrice, &v.HasVIP, &v.CreatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		v.Description = &desc.String
	}
	if phone.Valid {
		v.Phone = &phone.String
	}
	if minPrice.Valid {
		v.MinPrice = &minPrice.Int32
	}
	if maxPrice.Valid {
		v.MaxPrice = &maxPrice.Int32
	}
	return &v, nil
}

// ListFavoritesOf returns the venues the given user has favorited.
func (r *VenueRepo) ListFavoritesOf(ctx context.Context, userID uint64) ([]*model.Venue, error) {
	const q = `SELECT v.id, v.owner_id, v.name, v.description, v.city, v.address,
	                  v.phone, v.min_price, v.max_price, v.has_vip, v.created_at
	           FROM venues v
	           JOIN favorites f ON f.venue_id = v.id
	           WHERE f.user_id = ?
	           ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
