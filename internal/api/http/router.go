package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taskflow/internal/api/http/handlers"
	"github.com/spec-kit/taskflow/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Employees      *handlers.EmployeesHandler
	Tasks          *handlers.TasksHandler
	Teams          *handlers.TeamsHandler
	Projects       *handlers.ProjectsHandler
	Notifications  *handlers.NotificationsHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Accounts.Register)
	authGroup.Post("/login", cfg.Accounts.Login)
	authGroup.Post("/password/reset/request", cfg.Accounts.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Accounts.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Accounts.Me)
	authProtected.Post("/password/change", cfg.Accounts.ChangePassword)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	employees := api.Group("/employees")
	employees.Get("/", cfg.Employees.ListEmployees)
	employees.Post("/", auth.RequireWriter(), cfg.Employees.CreateEmployee)
	employees.Get("/:id", cfg.Employees.GetEmployee)
	employees.Put("/:id", auth.RequireWriter(), cfg.Employees.UpdateEmployee)
	employees.Patch("/:id/status", auth.RequireWriter(), cfg.Employees.UpdateStatus)
	employees.Delete("/:id", auth.RequireAdmin(), cfg.Employees.DeleteEmployee)
	employees.Get("/:id/tasks", cfg.Employees.EmployeeTasks)

	tasks := api.Group("/tasks")
	tasks.Get("/", cfg.Tasks.ListTasks)
	tasks.Post("/", auth.RequireWriter(), cfg.Tasks.CreateTask)
	tasks.Post("/auto-assign", auth.RequireWriter(), cfg.Tasks.AutoAssign)
	tasks.Get("/:id", cfg.Tasks.GetTask)
	tasks.Put("/:id", auth.RequireWriter(), cfg.Tasks.UpdateTask)
	tasks.Delete("/:id", auth.RequireWriter(), cfg.Tasks.DeleteTask)
	tasks.Post("/:id/assign", auth.RequireWriter(), cfg.Tasks.AssignTask)
	tasks.Patch("/:id/status", auth.RequireWriter(), cfg.Tasks.UpdateStatus)
	tasks.Get("/:id/recommendations", cfg.Tasks.Recommendations)
	tasks.Get("/:id/categorization", cfg.Tasks.Categorization)

	teams := api.Group("/teams")
	teams.Get("/", cfg.Teams.ListTeams)
	teams.Get("/:key", cfg.Teams.GetTeam)
	teams.Post("/:key/domains", auth.RequireWriter(), cfg.Teams.CreateDomain)
	teams.Put("/:key/domains/:domainId", auth.RequireWriter(), cfg.Teams.UpdateDomain)
	teams.Delete("/:key/domains/:domainId", auth.RequireAdmin(), cfg.Teams.DeleteDomain)
	teams.Get("/:key/domains/:domainId/tasks", cfg.Teams.DomainTasks)

	projects := api.Group("/projects")
	projects.Get("/", cfg.Projects.ListProjects)
	projects.Post("/", auth.RequireWriter(), cfg.Projects.CreateProject)
	projects.Get("/:id", cfg.Projects.GetProject)
	projects.Put("/:id", auth.RequireWriter(), cfg.Projects.UpdateProject)
	projects.Delete("/:id", auth.RequireAdmin(), cfg.Projects.DeleteProject)
	projects.Get("/:id/tasks", cfg.Projects.ProjectTasks)
	projects.Post("/:id/progress", auth.RequireWriter(), cfg.Projects.RefreshProgress)

	notifications := api.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Patch("/:id/read", cfg.Notifications.MarkRead)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Delete("/:id", cfg.Notifications.Dismiss)

	api.Get("/analytics", cfg.Analytics.Snapshot)
	api.Get("/skills", cfg.Analytics.Skills)
}
