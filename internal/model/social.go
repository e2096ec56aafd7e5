package model

import "time"

// Favorite marks a venue as saved by a user. The (user, venue) pair is
// unique; adding an existing favorite returns the stored row.
type Favorite struct {
	ID        uint64    // favorites.id
	UserID    uint64    // favorites.user_id
	VenueID   uint64    // favorites.venue_id
	CreatedAt time.Time // favorites.created_at
}

// Post is a feed entry written by a user.
type Post struct {
	ID        uint64    // posts.id
	AuthorID  uint64    // posts.author_id
	Content   string    // posts.content
	CreatedAt time.Time // posts.created_at
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        uint64    // comments.id
	PostID    uint64    // comments.post_id
	AuthorID  uint64    // comments.author_id
	Content   string    // comments.content
	CreatedAt time.Time // comments.created_at
}

// PostLike records that a user liked a post. The (post, user) pair is
// unique; liking twice is a no-op.
type PostLike struct {
	ID        uint64    // post_likes.id
	PostID    uint64    // post_likes.post_id
	UserID    uint64    // post_likes.user_id
	CreatedAt time.Time // post_likes.created_at
}
