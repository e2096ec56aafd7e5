package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/smokecodex/hookah-booking/internal/model"
	"github.com/smokecodex/hookah-booking/internal/utils"
)

// UserRepo provides persistence for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,display_name,bio,avatar_url,cover_url,city,created_at,updated_at"

// Create inserts a user and returns its ID. The email is normalized to
// lower case; a duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, displayName string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, display_name) VALUES (?,?,?)",
		email, hash, displayName)
	if err != nil {
		// MySQL error 1062 = duplicate key on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// ProfilePatch carries the optional profile fields of PATCH /users/me.
// Nil pointers leave the stored value untouched.
type ProfilePatch struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	CoverURL    *string
	City        *string
}

// UpdateProfile applies a partial profile update and returns the fresh
// row. Only the columns present in the patch are written.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, p ProfilePatch) (model.User, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if p.DisplayName != nil {
		sets = append(sets, "display_name=?")
		args = append(args, *p.DisplayName)
	}
	if p.Bio != nil {
		sets = append(sets, "bio=?")
		args = append(args, *p.Bio)
	}
	if p.AvatarURL != nil {
		sets = append(sets, "avatar_url=?")
		args = append(args, *p.AvatarURL)
	}
	if p.CoverURL != nil {
		sets = append(sets, "cover_url=?")
		args = append(args, *p.CoverURL)
	}
	if p.City != nil {
		sets = append(sets, "city=?")
		args = append(args, *p.City)
	}
	if len(sets) > 0 {
		args = append(args, id)
		q := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id=?"
		if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
			return model.User{}, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var (
		u                               model.User
		bio, avatarURL, coverURL, city sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&bio, &avatarURL, &coverURL, &city, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if bio.Valid {
		u.Bio = &bio.String
	}
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}
	if coverURL.Valid {
		u.CoverURL = &coverURL.String
	}
	if city.Valid {
		u.City = &city.String
	}
	return u, nil
}
