package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokecodex/hookah-booking/internal/model"
)

func newPostMock(t *testing.T) (*PostRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostRepo(db), mock
}

func TestListByAuthor_LikeCounts(t *testing.T) {
	repo, mock := newPostMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`LEFT JOIN post_likes l ON l.post_id = p.id`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "content", "created_at", "count"}).
			AddRow(2, 9, "second", now, 3).
			AddRow(1, 9, "first", now.Add(-time.Hour), 0))

	got, err := repo.ListByAuthor(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].LikesCount)
	assert.Equal(t, int64(0), got[1].LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLike_UnknownPost(t *testing.T) {
	repo, mock := newPostMock(t)

	mock.ExpectQuery(`SELECT id FROM posts WHERE id = \?`).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.Like(context.Background(), 404, 9)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLike_Idempotent(t *testing.T) {
	repo, mock := newPostMock(t)

	mock.ExpectQuery(`SELECT id FROM posts WHERE id = \?`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// INSERT IGNORE affects zero rows on a repeat like.
	mock.ExpectExec(`INSERT IGNORE INTO post_likes`).
		WithArgs(uint64(1), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Like(context.Background(), 1, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComment_UnknownPost(t *testing.T) {
	repo, mock := newPostMock(t)

	mock.ExpectQuery(`SELECT id FROM posts WHERE id = \?`).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.CreateComment(context.Background(), &model.Comment{PostID: 404, AuthorID: 9, Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
