package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smokecodex/hookah-booking/internal/model"
)

// PostRepo covers the social feed: posts, comments and likes.
type PostRepo struct {
	db *sql.DB
}

// NewPostRepo constructs a PostRepo given a DB handle.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

// CreatePost inserts a post and populates its ID and CreatedAt.
func (r *PostRepo) CreatePost(ctx context.Context, p *model.Post) error {
	const q = `INSERT INTO posts (author_id, content) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.AuthorID, p.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT created_at FROM posts WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.CreatedAt)
}

// PostWithLikes pairs a post with its like count for feed listings.
type PostWithLikes struct {
	model.Post
	LikesCount int64
}

// ListByAuthor returns a user's posts newest first, each with its like
// count aggregated in a single query.
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uint64) ([]PostWithLikes, error) {
	const q = `SELECT p.id, p.author_id, p.content, p.created_at, COUNT(l.id)
	           FROM posts p
	           LEFT JOIN post_likes l ON l.post_id = p.id
	           WHERE p.author_id = ?
	           GROUP BY p.id, p.author_id, p.content, p.created_at
	           ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PostWithLikes, 0)
	for rows.Next() {
		var p PostWithLikes
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt, &p.LikesCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether a post with the given id exists.
func (r *PostRepo) Exists(ctx context.Context, postID uint64) error {
	const q = `SELECT id FROM posts WHERE id = ?`
	var id uint64
	if err := r.db.QueryRowContext(ctx, q, postID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// Like records a like. Liking a post twice is a no-op; the unique
// (post_id, user_id) key backs the idempotence.
func (r *PostRepo) Like(ctx context.Context, postID, userID uint64) error {
	if err := r.Exists(ctx, postID); err != nil {
		return err
	}
	const q = `INSERT IGNORE INTO post_likes (post_id, user_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, postID, userID)
	return err
}

// CreateComment inserts a comment under an existing post and populates
// its ID and CreatedAt. It returns ErrPostNotFound when the post is
// absent.
func (r *PostRepo) CreateComment(ctx context.Context, c *model.Comment) error {
	if err := r.Exists(ctx, c.PostID); err != nil {
		return err
	}
	const q = `INSERT INTO comments (post_id, author_id, content) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.PostID, c.AuthorID, c.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT created_at FROM comments WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, c.ID).Scan(&c.CreatedAt)
}

// ListComments returns the comments of a post oldest first.
func (r *PostRepo) ListComments(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	const q = `SELECT id, post_id, author_id, content, created_at
	           FROM comments WHERE post_id = ? ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Comment, 0)
	for rows.Next() {
		c := new(model.Comment)
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
