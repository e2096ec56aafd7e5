package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

// TestCreateActive_ConcurrentWriters races N goroutines at the same slot of
// one room against a real MySQL instance and asserts that exactly one
// insert wins. The room-row lock serializes the check-then-insert sequence,
// so the others must observe the winner's row and fail with ErrSlotTaken.
//
// Set TEST_MYSQL_DSN (e.g. "user:pass@tcp(localhost:3306)/hookah_test?parseTime=true")
// to run it; it is skipped otherwise.
func TestCreateActive_ConcurrentWriters(t *testing.T) {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))

	// Seed an owner, a venue and a room for the race.
	res, err := db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, display_name) VALUES (?, 'x', 'racer')",
		time.Now().Format("150405.000000")+"@race.test")
	require.NoError(t, err)
	ownerID, _ := res.LastInsertId()

	res, err = db.ExecContext(ctx,
		"INSERT INTO venues (owner_id, name, city, address) VALUES (?, 'race venue', 'Test', '1 Test St')", ownerID)
	require.NoError(t, err)
	venueID, _ := res.LastInsertId()

	res, err = db.ExecContext(ctx,
		"INSERT INTO rooms (venue_id, name, capacity, hourly_price, is_private) VALUES (?, 'race room', 4, 1000, 0)", venueID)
	require.NoError(t, err)
	roomID, _ := res.LastInsertId()

	repo := NewBookingRepo(db)
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	end := start.Add(2 * time.Hour)

	const writers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.CreateActive(context.Background(), uint64(ownerID), uint64(roomID), start, end)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes, "exactly one writer must win the slot")
	require.Equal(t, writers-1, conflicts)

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE room_id = ? AND status = 'active'", roomID).Scan(&count))
	require.Equal(t, 1, count)
}
