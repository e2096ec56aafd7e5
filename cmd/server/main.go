package main // Entry point package

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/smokecodex/hookah-booking/internal/config"
	"github.com/smokecodex/hookah-booking/internal/database"
	"github.com/smokecodex/hookah-booking/internal/handler"
	"github.com/smokecodex/hookah-booking/internal/middleware"
	"github.com/smokecodex/hookah-booking/internal/queue"
	"github.com/smokecodex/hookah-booking/internal/repository"
	"github.com/smokecodex/hookah-booking/internal/router"
)

// requestValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request structs.
type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	if err := rv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database migrate: %v", err)
	}
	cancel()

	// Redis backs the response cache and the rate limiter. Both degrade
	// gracefully when it is unreachable.
	rdb := config.NewRedisClient()

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	venues := repository.NewVenueRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	posts := repository.NewPostRepo(db)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	profileH := handler.NewProfileHandler(users)
	venueH := handler.NewVenueHandler(venues, rooms)
	bookingH := handler.NewBookingHandler(bookings, rooms, venues)
	favoriteH := handler.NewFavoriteHandler(favorites, venues)
	postH := handler.NewPostHandler(posts)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Validator = &requestValidator{v: validator.New()}

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Register application routes
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, profileH, cfg.JWTSecret)
	router.RegisterBrowse(e, venueH, postH, cache)
	router.RegisterUser(e, venueH, bookingH, favoriteH, postH, cfg.JWTSecret)

	// Background consumer that mirrors booking events into logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
