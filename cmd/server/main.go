package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/sabahotel/backoffice/internal/auth"
	"github.com/sabahotel/backoffice/internal/bot"
	"github.com/sabahotel/backoffice/internal/config" // Internal config loader
	"github.com/sabahotel/backoffice/internal/database"
	"github.com/sabahotel/backoffice/internal/handler"
	"github.com/sabahotel/backoffice/internal/queue"
	"github.com/sabahotel/backoffice/internal/repository"
	"github.com/sabahotel/backoffice/internal/router" // Internal router setup
)

func main() {
	_ = godotenv.Load() // Optional .env for local development
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}

	// Create tables and seed the admin account on a fresh install.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Init(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema init failed: %v", err)
	}
	if err := database.EnsureDefaultAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		cancel()
		log.Fatalf("admin seed failed: %v", err)
	}
	cancel()

	// Redis is optional: without it caching and rate limiting become
	// pass-throughs and bot sessions live in process memory.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache/rate-limit disabled, bot sessions in memory")
	}

	// Repositories
	employees := repository.NewEmployeeRepo(db)
	tokens := repository.NewTokenRepo(db)
	guests := repository.NewGuestRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	stats := repository.NewStatsRepo(db)

	authenticator := auth.NewAuthenticator(employees)

	// Bot conversation engine with Redis-backed sessions when possible.
	var sessions bot.SessionStore
	if rdb != nil {
		sessions = bot.NewRedisSessionStore(rdb, time.Duration(cfg.BotSessionTTLMin)*time.Minute)
	} else {
		sessions = bot.NewMemorySessionStore()
	}
	engine := &bot.Engine{
		Sessions:     sessions,
		Auth:         authenticator,
		Rooms:        rooms,
		Reservations: reservations,
		Stats:        stats,
		DashboardURL: cfg.DashboardURL,
	}

	// Background consumer appending reservation events to the activity
	// log.  Runs its own reconnect loop for the life of the process.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.Register(e, router.Deps{
		Cfg:          cfg,
		RDB:          rdb,
		Auth:         handler.NewAuthHandler(cfg, authenticator, employees, tokens),
		Guests:       handler.NewGuestHandler(guests),
		Rooms:        handler.NewRoomHandler(rooms),
		Reservations: handler.NewReservationHandler(reservations),
		Stats:        handler.NewStatsHandler(stats),
		Employees:    handler.NewEmployeeHandler(employees),
		Bot:          handler.NewBotHandler(engine),
	})

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
