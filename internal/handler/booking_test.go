package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokecodex/hookah-booking/internal/model"
	"github.com/smokecodex/hookah-booking/internal/repository"
)

type testValidator struct{ v *validator.Validate }

func (tv *testValidator) Validate(i interface{}) error { return tv.v.Struct(i) }

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

func newBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBookingHandler(
		repository.NewBookingRepo(db),
		repository.NewRoomRepo(db),
		repository.NewVenueRepo(db),
	), mock
}

func bookingJSON(roomID uint64, start, end time.Time) string {
	b, _ := json.Marshal(map[string]interface{}{
		"room_id":    roomID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	})
	return string(b)
}

func doCreate(h *BookingHandler, body string) *httptest.ResponseRecorder {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(9))
	_ = h.Create(c)
	return rec
}

func TestBookingCreate_Success(t *testing.T) {
	h, mock := newBookingHandler(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "start_time", "end_time", "status", "created_at"}).
			AddRow(42, 9, 5, start, end, model.BookingStatusActive, now))
	mock.ExpectCommit()

	rec := doCreate(h, bookingJSON(5, start, end))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(42), got.ID)
	assert.Equal(t, model.BookingStatusActive, got.Status)
}

func TestBookingCreate_Conflict(t *testing.T) {
	h, mock := newBookingHandler(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	rec := doCreate(h, bookingJSON(5, start, end))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "time slot already booked")
}

func TestBookingCreate_RoomNotFound(t *testing.T) {
	h, mock := newBookingHandler(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	rec := doCreate(h, bookingJSON(404, start, end))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "room not found")
}

func TestBookingCreate_InvalidInterval(t *testing.T) {
	h, _ := newBookingHandler(t)

	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	rec := doCreate(h, bookingJSON(5, at, at))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_time must be before end_time")
}

func TestBookingCancel_Forbidden(t *testing.T) {
	h, mock := newBookingHandler(t)

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/bookings/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/bookings/:id")
	c.SetParamNames("id")
	c.SetParamValues("42")
	c.Set("user_id", uint64(9))

	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBookingList_BadStatus(t *testing.T) {
	h, _ := newBookingHandler(t)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/bookings?status=done", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(9))

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
