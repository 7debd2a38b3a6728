package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/lab-support/internal/api/http/handlers"
	"github.com/campus-it/lab-support/internal/auth"
	"github.com/campus-it/lab-support/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Faculty        *handlers.FacultyHandler
	Technical      *handlers.TechnicalHandler
	Supervisor     *handlers.SupervisorHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	api.Post("/auth/login", cfg.Users.Login)

	authed := api.Group("", cfg.AuthMiddleware.Handle)
	authed.Put("/auth/password", auth.RequireAuthenticated(), cfg.Users.ChangePassword)

	staff := auth.RequireRole(domain.RoleTechnicalMember, domain.RoleSupervisor)
	faculty := auth.RequireRole(domain.RoleFacultyMember)
	supervisor := auth.RequireRole(domain.RoleSupervisor)

	// Lab browsing is open to any authenticated user.
	authed.Get("/labs", auth.RequireAuthenticated(), cfg.Faculty.GetLabs)
	authed.Get("/labs/overview", supervisor, cfg.Faculty.GetLabsOverview)
	authed.Get("/labs/:labNumber/devices", auth.RequireAuthenticated(), cfg.Faculty.GetLabDevices)

	authed.Post("/reports", faculty, cfg.Faculty.FileReport)
	authed.Get("/reports/mine", faculty, cfg.Faculty.MyReports)
	authed.Post("/requests", faculty, cfg.Faculty.CreateRequest)
	authed.Get("/requests/mine", faculty, cfg.Faculty.MyRequests)

	authed.Post("/devices", staff, cfg.Technical.AddDevice)
	authed.Get("/devices", staff, cfg.Technical.ListDevices)
	authed.Get("/devices/search", staff, cfg.Technical.SearchDevice)
	authed.Delete("/devices/:serialNumber", staff, cfg.Technical.DeleteDevice)

	authed.Get("/reports/assigned", staff, cfg.Technical.AssignedReports)
	authed.Put("/reports/:id/resolve", staff, cfg.Technical.ResolveReport)
	authed.Get("/requests/assigned", staff, cfg.Technical.AssignedRequests)
	authed.Put("/requests/:id/handle", staff, cfg.Technical.HandleRequest)
	authed.Get("/notifications", staff, cfg.Technical.Notifications)
	authed.Get("/notifications/reports/count", staff, cfg.Technical.ReportNotificationCount)
	authed.Get("/notifications/requests/count", staff, cfg.Technical.RequestNotificationCount)

	authed.Get("/reports", supervisor, cfg.Supervisor.ListReports)
	authed.Get("/reports/new", supervisor, cfg.Supervisor.NewReports)
	authed.Get("/reports/unchecked", supervisor, cfg.Supervisor.MonitorReports)
	authed.Put("/reports/:id/assign", supervisor, cfg.Supervisor.AssignReport)
	authed.Put("/reports/:id/check", supervisor, cfg.Supervisor.CheckReport)
	authed.Get("/requests", supervisor, cfg.Supervisor.ListRequests)
	authed.Put("/requests/:id/assign", supervisor, cfg.Supervisor.AssignRequest)

	authed.Get("/stats/team-progress", supervisor, cfg.Supervisor.TeamProgress)
	authed.Get("/stats/reports", supervisor, cfg.Supervisor.ReportStatistics)
	authed.Get("/stats/devices", supervisor, cfg.Supervisor.DevicesStatistics)
	authed.Get("/stats/devices/:serialNumber/reports", supervisor, cfg.Supervisor.DeviceReportStatistics)

	authed.Get("/users", supervisor, cfg.Users.GetUsers)
	authed.Get("/users/technical-members", supervisor, cfg.Users.GetTechnicalMembers)
	authed.Get("/users/:id", supervisor, cfg.Users.GetUser)
}
