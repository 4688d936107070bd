package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/staffing-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Events         *handlers.EventsHandler
	Corrections    *handlers.CorrectionsHandler
	Invoices       *handlers.InvoicesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/incident-report", cfg.Corrections.SubmitIncident)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	// Credential follow-ups run before the role gates: a fresh contractor
	// has a valid token but no completed profile yet.
	authed.Post("/reset-password", cfg.Auth.ResetPassword)
	authed.Post("/complete-profile", cfg.Auth.CompleteProfile)
	authed.Put("/profile", auth.RequireAnyRole(), cfg.Users.UpdateProfile)

	admin := authed.Group("", auth.RequireAdmin())
	admin.Post("/create-event", cfg.Events.Create)
	admin.Get("/create-event/:eventId", cfg.Events.Get)
	admin.Put("/events/:id", cfg.Events.Update)
	admin.Delete("/events/:id", cfg.Events.Delete)
	admin.Post("/events/send-notifications", cfg.Events.SendNotifications)
	admin.Post("/events/:id/approve", cfg.Events.Approve)

	authed.Get("/events", auth.RequireAnyRole(), cfg.Events.List)
	authed.Post("/events/:id/respond", auth.RequireContractor(), cfg.Events.Respond)

	authed.Post("/correction-report", auth.RequireAnyRole(), cfg.Corrections.Submit)
	authed.Put("/correction-report/:id", auth.RequireAnyRole(), cfg.Corrections.Update)
	admin.Get("/corrections", cfg.Corrections.List)
	admin.Get("/corrections/:id", cfg.Corrections.Get)
	admin.Put("/corrections/:id", cfg.Corrections.Update)
	admin.Delete("/corrections/:id", cfg.Corrections.Delete)
	admin.Get("/incident-report/events", cfg.Corrections.ListIncidents)

	admin.Get("/invoices/admin", cfg.Invoices.List)
	admin.Get("/invoices/user/:userId", cfg.Invoices.ListByUser)
	authed.Get("/invoices/mine", auth.RequireContractor(), cfg.Invoices.ListMine)
	authed.Get("/invoices/:id", auth.RequireAnyRole(), cfg.Invoices.Get)
	authed.Put("/invoices/:id", auth.RequireAnyRole(), cfg.Invoices.UpdateItems)
	authed.Post("/invoices", auth.RequireAnyRole(), cfg.Invoices.Create)

	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/contractors", cfg.Users.ListContractors)
	admin.Delete("/users/:id", cfg.Users.Delete)
}
