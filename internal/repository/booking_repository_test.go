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

func newMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBookingRepo(db), mock
}

func bookingRows(id, userID, roomID uint64, start, end time.Time, status string, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "room_id", "start_time", "end_time", "status", "created_at"}).
		AddRow(id, userID, roomID, start, end, status, createdAt)
}

func TestCreateActive_Success(t *testing.T) {
	repo, mock := newMock(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(uint64(5), model.BookingStatusActive, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(uint64(9), uint64(5), start, end, model.BookingStatusActive).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`SELECT id, user_id, room_id, start_time, end_time, status, created_at FROM bookings WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(bookingRows(42, 9, 5, start, end, model.BookingStatusActive, now))
	mock.ExpectCommit()

	b, err := repo.CreateActive(context.Background(), 9, 5, start, end)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), b.ID)
	assert.Equal(t, model.BookingStatusActive, b.Status)
	assert.True(t, b.StartTime.Equal(start))
	assert.True(t, b.EndTime.Equal(end))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateActive_ConflictRollsBack(t *testing.T) {
	repo, mock := newMock(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(uint64(5), model.BookingStatusActive, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	b, err := repo.CreateActive(context.Background(), 9, 5, start, end)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrSlotTaken)
	// No INSERT was expected; the script proves nothing was written.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateActive_RoomNotFound(t *testing.T) {
	repo, mock := newMock(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.CreateActive(context.Background(), 9, 404, start, end)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateActive_InvalidInterval(t *testing.T) {
	repo, mock := newMock(t)

	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	// Equal endpoints: the empty interval is rejected before any query.
	_, err := repo.CreateActive(context.Background(), 9, 5, at, at)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// Reversed endpoints.
	_, err = repo.CreateActive(context.Background(), 9, 5, at.Add(time.Hour), at)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Touching intervals are not conflicts: the overlap predicate uses strict
// inequalities, so a booking ending exactly at the new start must not be
// counted. The mock verifies the exact boundary arguments reach the query.
func TestCreateActive_TouchingEndpointsQueryArgs(t *testing.T) {
	repo, mock := newMock(t)

	start := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC) // previous booking ends here
	end := start.Add(time.Hour)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`end_time > \? AND start_time < \?`).
		WithArgs(uint64(5), model.BookingStatusActive, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(uint64(9), uint64(5), start, end, model.BookingStatusActive).
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(uint64(43)).
		WillReturnRows(bookingRows(43, 9, 5, start, end, model.BookingStatusActive, now))
	mock.ExpectCommit()

	_, err := repo.CreateActive(context.Background(), 9, 5, start, end)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_Owner(t *testing.T) {
	repo, mock := newMock(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(9))
	mock.ExpectExec(`UPDATE bookings SET status = \? WHERE id = \?`).
		WithArgs(model.BookingStatusCancelled, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(bookingRows(42, 9, 5, start, end, model.BookingStatusCancelled, now))

	b, err := repo.Cancel(context.Background(), 42, 9)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_Forbidden(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	_, err := repo.Cancel(context.Background(), 42, 9)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.Cancel(context.Background(), 42, 9)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Re-cancelling stays in the terminal state and still succeeds.
func TestCancel_Idempotent(t *testing.T) {
	repo, mock := newMock(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(9))
	mock.ExpectExec(`UPDATE bookings SET status = \? WHERE id = \?`).
		WithArgs(model.BookingStatusCancelled, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // already cancelled, no row changed
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(bookingRows(42, 9, 5, start, end, model.BookingStatusCancelled, now))

	b, err := repo.Cancel(context.Background(), 42, 9)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_StatusFilter(t *testing.T) {
	repo, mock := newMock(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM bookings WHERE user_id = \? AND status = \? ORDER BY start_time DESC`).
		WithArgs(uint64(9), model.BookingStatusActive).
		WillReturnRows(
			bookingRows(2, 9, 5, start.Add(24*time.Hour), start.Add(25*time.Hour), model.BookingStatusActive, now).
				AddRow(1, 9, 5, start, start.Add(time.Hour), model.BookingStatusActive, now))

	got, err := repo.ListByUser(context.Background(), 9, model.BookingStatusActive)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].ID) // newest start first
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_NoFilter(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM bookings WHERE user_id = \? ORDER BY start_time DESC`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "start_time", "end_time", "status", "created_at"}))

	got, err := repo.ListByUser(context.Background(), 9, "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
