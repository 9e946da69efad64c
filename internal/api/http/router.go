package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Categories     *handlers.CategoriesHandler
	Notifications  *handlers.NotificationsHandler
	Roles          *handlers.RolesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Users.Me)
	protected.Put("/me", cfg.Users.UpdateMe)

	protected.Get("/categories", cfg.Categories.List)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Post("/:id/vote", cfg.Tickets.Vote)

	staffOnly := tickets.Group("", auth.RequireElevated())
	staffOnly.Post("/:id/assign", cfg.Tickets.Assign)
	staffOnly.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	staffOnly.Post("/:id/replies", cfg.Tickets.AddReply)

	notifications := protected.Group("/notifications")
	notifications.Get("", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Get("/stream", cfg.Notifications.Stream)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	roleRequests := protected.Group("/role-requests")
	roleRequests.Post("", cfg.Roles.Create)

	adminRoles := roleRequests.Group("", auth.RequireAdmin())
	adminRoles.Get("/pending", cfg.Roles.ListPending)
	adminRoles.Post("/:id/approve", cfg.Roles.Approve)
	adminRoles.Post("/:id/reject", cfg.Roles.Reject)

	adminCategories := protected.Group("/categories", auth.RequireAdmin())
	adminCategories.Post("", cfg.Categories.Create)
	adminCategories.Put("/:id", cfg.Categories.Update)
	adminCategories.Delete("/:id", cfg.Categories.Delete)
}
