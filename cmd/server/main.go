package main // Entry point package

import (
	"log" // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/trip-seat-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/trip-seat-booking/internal/database"   // MySQL connection pool
	"github.com/iliyamo/trip-seat-booking/internal/engine"     // Seat inventory and booking engine
	"github.com/iliyamo/trip-seat-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/trip-seat-booking/internal/middleware" // Rate limiting middleware
	"github.com/iliyamo/trip-seat-booking/internal/queue"      // Seat status event consumer
	"github.com/iliyamo/trip-seat-booking/internal/repository" // Catalog and booking archive repositories
	"github.com/iliyamo/trip-seat-booking/internal/router"     // Route registration
	queue_publisher "github.com/iliyamo/trip-seat-booking/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	// The fleet catalog and the booking archive live in MySQL.  The
	// catalog is required: without it no trip can be materialized.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Assemble the engine: seat state store, trip registry, hold
	// manager and booking ledger, with RabbitMQ as the broadcast sink.
	store := engine.NewStore()
	registry := engine.NewRegistry(repository.NewVehicleRepo(db), store)
	notifier := &queue_publisher.BrokerNotifier{}
	holds := engine.NewHoldManager(store, notifier, cfg.HoldTTL)
	ledger := engine.NewLedger(store, holds, notifier, repository.NewBookingRepo(db))

	// The consumer tails seat.status-changed into logs/seat-status.log.
	// It runs its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartSeatStatusConsumer(); err != nil {
			log.Printf("seat-status-consumer: %v", err)
		}
	}()

	e := echo.New()          // Create Echo instance
	router.RegisterRoutes(e) // Register application routes
	router.RegisterPublic(e, handler.NewTripHandler(registry, store))

	// Redis-backed token bucket; degrades to pass-through when redis
	// is unreachable.
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())
	router.RegisterBooking(e, handler.NewHoldHandler(holds), handler.NewBookingHandler(ledger), cfg.JWTSecret, rl)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
