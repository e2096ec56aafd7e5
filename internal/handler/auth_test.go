package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokecodex/hookah-booking/internal/config"
	"github.com/smokecodex/hookah-booking/internal/repository"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4, // min cost keeps tests fast
	}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister_Success(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := newTestEcho()

	email := strings.ToLower(gofakeit.Email())
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(email, sqlmock.AnyArg(), "Ada").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	body, _ := json.Marshal(map[string]string{
		"email": email, "password": "hunter2-long", "display_name": "Ada",
	})
	c, rec := postJSON(e, "/auth/register", string(body))

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(11), got.User.ID)
	assert.NotEmpty(t, got.Access.Token)
	assert.NotEmpty(t, got.Refresh.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := newTestEcho()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	body, _ := json.Marshal(map[string]string{
		"email": "dup@example.com", "password": "hunter2-long", "display_name": "Ada",
	})
	c, rec := postJSON(e, "/auth/register", string(body))
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

func TestRegister_Validation(t *testing.T) {
	h, _ := newAuthHandler(t)
	e := newTestEcho()

	for name, body := range map[string]string{
		"missing email":     `{"password":"hunter2-long","display_name":"Ada"}`,
		"bad email":         `{"email":"nope","password":"hunter2-long","display_name":"Ada"}`,
		"short password":    `{"email":"a@b.co","password":"short","display_name":"Ada"}`,
		"no display name":   `{"email":"a@b.co","password":"hunter2-long"}`,
		"empty body fields": `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := postJSON(e, "/auth/register", body)
			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := newTestEcho()

	mock.ExpectQuery(`FROM users WHERE email=\?`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := postJSON(e, "/auth/login", `{"email":"ghost@example.com","password":"whatever1"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestRefresh_InvalidToken(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := newTestEcho()

	mock.ExpectQuery(`FROM refresh_tokens`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	c, rec := postJSON(e, "/auth/refresh", `{"refresh_token":"bogus"}`)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_NoCredentials(t *testing.T) {
	h, _ := newAuthHandler(t)
	e := newTestEcho()

	c, rec := postJSON(e, "/auth/logout", `{}`)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
