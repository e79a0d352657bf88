package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/sabahotel/backoffice/internal/config"
	"github.com/sabahotel/backoffice/internal/handler"    // import the handlers that implement business logic
	"github.com/sabahotel/backoffice/internal/middleware" // import middleware for JWT authentication and access enforcement
)

// Deps bundles everything Register needs: the loaded configuration, an
// optional Redis client (nil disables caching and rate limiting) and
// one handler per resource.
type Deps struct {
	Cfg          config.Config
	RDB          *redis.Client
	Auth         *handler.AuthHandler
	Guests       *handler.GuestHandler
	Rooms        *handler.RoomHandler
	Reservations *handler.ReservationHandler
	Stats        *handler.StatsHandler
	Employees    *handler.EmployeeHandler
	Bot          *handler.BotHandler
}

// Register wires every route of the API onto the provided Echo
// instance.  Unauthenticated operations live under /v1/auth and the
// bot webhook; everything else sits behind JWTAuth under /v1.
func Register(e *echo.Echo, d Deps) {
	// Health check for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)

	// Redis-backed middleware.  Both degrade to pass-throughs when the
	// client is nil, so a missing Redis never takes the API down.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.RDB)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.RDB)

	// Credential endpoints.  Login is rate limited to slow down
	// brute-force attempts; refresh and logout authenticate through the
	// refresh token itself.
	authG := e.Group("/v1/auth")
	authG.POST("/login", d.Auth.Login, limiter)
	authG.POST("/refresh", d.Auth.Refresh)
	authG.POST("/logout", d.Auth.Logout)

	// Bot webhook.  The conversation engine does its own login check;
	// the rate limiter keeps a chatty client from hammering the DB.
	e.POST("/v1/bot/messages", d.Bot.Message, limiter)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret))
	v1.GET("/me", d.Auth.Me)
	v1.POST("/me/password", d.Auth.ChangePassword)
	v1.POST("/logout-all", d.Auth.LogoutAll)

	// Guests and their contact sub-resources.
	v1.GET("/guests", d.Guests.List)
	v1.POST("/guests", d.Guests.Create)
	v1.GET("/guests/:id", d.Guests.Get)
	v1.DELETE("/guests/:id", d.Guests.Delete)
	v1.POST("/guests/:id/phones", d.Guests.AddPhone)
	v1.DELETE("/guests/:id/phones/:phoneID", d.Guests.DeletePhone)
	v1.POST("/guests/:id/addresses", d.Guests.AddAddress)
	v1.DELETE("/guests/:id/addresses/:addressID", d.Guests.DeleteAddress)

	// Rooms.  Listings are cached; registering and deleting rooms is
	// reserved for senior staff.
	v1.GET("/rooms", d.Rooms.List, cache)
	v1.GET("/rooms/:id", d.Rooms.Get)
	v1.PATCH("/rooms/:id/status", d.Rooms.UpdateStatus)
	v1.POST("/rooms", d.Rooms.Create, middleware.RequireAccessLevel(3))
	v1.DELETE("/rooms/:id", d.Rooms.Delete, middleware.RequireAccessLevel(3))

	// Reservations: booking, lifecycle and payments.
	v1.POST("/reservations", d.Reservations.Create)
	v1.GET("/reservations/active", d.Reservations.ListActive)
	v1.GET("/reservations/:id", d.Reservations.Get)
	v1.POST("/reservations/:id/cancel", d.Reservations.Cancel)
	v1.POST("/reservations/:id/finish", d.Reservations.Finish)
	v1.POST("/reservations/:id/payments", d.Reservations.AddPayment)

	// Dashboard aggregates, cached alongside the room listings.
	v1.GET("/stats/dashboard", d.Stats.Dashboard, cache)
	v1.GET("/stats/rooms", d.Stats.RoomStatus, cache)

	// Staff management.  Viewing accounts needs level 4; creating a new
	// account is admin-only.
	em := v1.Group("/employees", middleware.RequireAccessLevel(4))
	em.GET("", d.Employees.List)
	em.GET("/:id", d.Employees.Get)
	em.POST("", d.Employees.Create, middleware.RequireAccessLevel(5))
}
