package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/api/http/handlers"
	"github.com/missao-redime/church-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Members     *handlers.MembersHandler
	Departments *handlers.DepartmentsHandler
	Donations   *handlers.DonationsHandler
	Prayer      *handlers.PrayerHandler
	Content     *handlers.ContentHandler
	Admin       *handlers.AdminHandler
	Guard       *auth.Guard
	Tokens      *auth.TokenManager
}

// RegisterRoutes wires HTTP routes. The guard runs before every route and
// handles the page-route redirect semantics; data endpoints under /api
// enforce authentication with status codes via RequireSession.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Guard.Handle)

	// Page routes. Public marketing pages are served by a separate frontend;
	// only the guard-relevant pages exist here.
	app.Get("/auth/login", cfg.Admin.LoginPage)
	app.Get("/admin/dashboard", cfg.Admin.Dashboard)
	app.Get("/admin/members", cfg.Admin.MembersPage)
	app.Get("/admin/departments", cfg.Admin.DepartmentsPage)

	api := app.Group("/api")

	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/logout", cfg.Auth.Logout)
	api.Get("/auth/me", auth.RequireSession(cfg.Tokens), cfg.Auth.Me)

	// Public content.
	api.Get("/ministries", cfg.Departments.Ministries)
	api.Get("/sermons", cfg.Content.ListSermons)
	api.Get("/sermons/:slug", cfg.Content.GetSermon)
	api.Get("/live", cfg.Content.Live)
	api.Post("/donations", cfg.Donations.Create)
	api.Post("/prayer-requests", cfg.Prayer.Submit)

	api.Get("/donations", auth.RequireSession(cfg.Tokens), auth.RequireLeader(), cfg.Donations.List)
	api.Get("/prayer-requests", auth.RequireSession(cfg.Tokens), auth.RequireLeader(), cfg.Prayer.List)
	api.Patch("/prayer-requests/:id/prayed", auth.RequireSession(cfg.Tokens), auth.RequireLeader(), cfg.Prayer.MarkPrayed)

	members := api.Group("/members", auth.RequireSession(cfg.Tokens), auth.RequireLeader())
	members.Get("/", cfg.Members.List)
	members.Post("/", cfg.Members.Create)
	members.Get("/:id", cfg.Members.Get)
	members.Put("/:id", cfg.Members.Update)
	members.Delete("/:id", cfg.Members.Delete)

	departments := api.Group("/departments", auth.RequireSession(cfg.Tokens))
	departments.Get("/", cfg.Departments.List)
	departments.Post("/", auth.RequireAdmin(), cfg.Departments.Create)
	departments.Put("/:id", auth.RequireAdmin(), cfg.Departments.Update)
	departments.Delete("/:id", auth.RequireAdmin(), cfg.Departments.Deactivate)

	adminAPI := api.Group("/admin", auth.RequireSession(cfg.Tokens))
	adminAPI.Get("/sermons", auth.RequireLeader(), cfg.Content.ListAllSermons)
	adminAPI.Post("/sermons", auth.RequireLeader(), cfg.Content.CreateSermon)
	adminAPI.Put("/sermons/:id", auth.RequireLeader(), cfg.Content.UpdateSermon)
	adminAPI.Delete("/sermons/:id", auth.RequireAdmin(), cfg.Content.DeleteSermon)
	adminAPI.Put("/live", auth.RequireAdmin(), cfg.Content.SetLive)
}
