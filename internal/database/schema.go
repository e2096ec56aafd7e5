package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL executed at startup. Statements use IF NOT EXISTS so
// repeated boots are harmless; production deployments can run the same DDL
// through their own migration tooling instead.
//
// bookings carries the composite index (room_id, status, start_time,
// end_time) so the overlap check inside the booking transaction resolves
// without a full scan while the room row is locked.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		display_name  VARCHAR(120) NOT NULL,
		bio           TEXT NULL,
		avatar_url    VARCHAR(512) NULL,
		cover_url     VARCHAR(512) NULL,
		city          VARCHAR(120) NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		owner_id    BIGINT UNSIGNED NOT NULL,
		name        VARCHAR(255) NOT NULL,
		description TEXT NULL,
		city        VARCHAR(120) NOT NULL,
		address     VARCHAR(255) NOT NULL,
		phone       VARCHAR(50) NULL,
		min_price   INT NULL,
		max_price   INT NULL,
		has_vip     TINYINT(1) NOT NULL DEFAULT 0,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_venues_city (city),
		CONSTRAINT fk_venues_owner FOREIGN KEY (owner_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		venue_id     BIGINT UNSIGNED NOT NULL,
		name         VARCHAR(120) NOT NULL,
		capacity     INT UNSIGNED NOT NULL,
		hourly_price INT UNSIGNED NOT NULL,
		is_private   TINYINT(1) NOT NULL DEFAULT 0,
		KEY idx_rooms_venue (venue_id),
		CONSTRAINT fk_rooms_venue FOREIGN KEY (venue_id) REFERENCES venues (id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		room_id    BIGINT UNSIGNED NOT NULL,
		start_time DATETIME NOT NULL,
		end_time   DATETIME NOT NULL,
		status     VARCHAR(30) NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_user_start (user_id, start_time),
		KEY idx_bookings_room_window (room_id, status, start_time, end_time),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_bookings_room FOREIGN KEY (room_id) REFERENCES rooms (id)
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		venue_id   BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_favorites_user_venue (user_id, venue_id),
		CONSTRAINT fk_favorites_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_favorites_venue FOREIGN KEY (venue_id) REFERENCES venues (id)
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		author_id  BIGINT UNSIGNED NOT NULL,
		content    TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_posts_author_created (author_id, created_at),
		CONSTRAINT fk_posts_author FOREIGN KEY (author_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		post_id    BIGINT UNSIGNED NOT NULL,
		author_id  BIGINT UNSIGNED NOT NULL,
		content    TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_comments_post_created (post_id, created_at),
		CONSTRAINT fk_comments_post FOREIGN KEY (post_id) REFERENCES posts (id),
		CONSTRAINT fk_comments_author FOREIGN KEY (author_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS post_likes (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		post_id    BIGINT UNSIGNED NOT NULL,
		user_id    BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_post_likes (post_id, user_id),
		CONSTRAINT fk_post_likes_post FOREIGN KEY (post_id) REFERENCES posts (id),
		CONSTRAINT fk_post_likes_user FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
}

// Migrate creates any missing tables. It is called once at startup after
// Open succeeds.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
