package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/middleware"
)

type Handlers struct {
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Resumes      *ResumeHandler
	Auth         *AuthHandler
	Stats        *StatsHandler
	Contact      *ContactHandler
}

// RegisterRoutes mounts the public API under /api and the admin API under
// /api/admin. Only login and logout are reachable without a session.
func RegisterRoutes(app fiber.Router, auth middleware.Authenticator, h Handlers) {
	api := app.Group("/api")
	admin := api.Group("/admin")
	h.Auth.RegisterRoutes(admin, middleware.RequireAdmin(auth))

	h.Jobs.RegisterRoutes(api, admin)
	h.Applications.RegisterRoutes(api, admin)
	h.Resumes.RegisterRoutes(api, admin)
	h.Stats.RegisterRoutes(admin)
	h.Contact.RegisterRoutes(api)
}
