package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ZeynepCam13/OnlineDestek/internal/api/http/handlers"
	"github.com/ZeynepCam13/OnlineDestek/internal/auth"
	"github.com/ZeynepCam13/OnlineDestek/internal/repository"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Users        *handlers.UsersHandler
	Tickets      *handlers.TicketsHandler
	AdminTickets *handlers.AdminTicketsHandler
	Sessions     *auth.SessionMiddleware
	UserRepo     repository.UserRepository
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)
	api.Post("/logout", cfg.Users.Logout)

	// Ticket lookup by id is registered before the session group so it
	// stays reachable without a session.
	api.Get("/tickets/:id", cfg.Tickets.GetTicket)

	protected := api.Group("", cfg.Sessions.RequireSession)
	protected.Get("/profile", cfg.Users.Profile)
	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Post("/tickets", cfg.Tickets.CreateTicket)

	admin := protected.Group("/admin", auth.RequireAdmin(cfg.UserRepo))
	admin.Get("/tickets", cfg.AdminTickets.ListAllTickets)
	admin.Post("/tickets/:id/status", cfg.AdminTickets.UpdateStatus)
}
