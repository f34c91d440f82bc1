package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes maps the operation catalogue onto HTTP routes. Register and
// login are open; everything else sits behind the auth middleware.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Post("/api/auth/register", handlers.accountHandler.register())
	r.Post("/api/auth/login", handlers.accountHandler.login())

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/api/user/profile", handlers.accountHandler.getProfile())
		r.Put("/api/user/update-email", handlers.accountHandler.updateEmail())
		r.Delete("/api/user/delete-account", handlers.accountHandler.deleteAccount())

		r.Get("/api/projects", handlers.projectHandler.listProjects())
		r.Post("/api/projects", handlers.projectHandler.createProject())
		r.Get("/api/projects/{projectID}", handlers.projectHandler.getProject())
		r.Put("/api/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Get("/api/projects/{projectID}/flow", handlers.flowHandler.getFlow())
		r.Post("/api/projects/{projectID}/flow", handlers.flowHandler.saveFlow())

		r.Post("/api/upload-image", handlers.imageHandler.uploadImage())
	})
}
