package http

import (
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Init builds the router. Middleware order matters: trace id first so every
// log line carries one, then logging and metrics around the handler chain.
// Authentication always runs before any role gate, so an unauthenticated
// request is answered 401 even on routes it would also lack the role for.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/menu", h.getMenu)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/ping", h.ping)
		r.Method("GET", "/metrics", promhttp.Handler())
	})

	// routes for any authenticated principal
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/profile", h.profile)
		r.Put("/api/auth/profile", h.updateProfile)
		r.Post("/api/auth/change-password", h.changePassword)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/food-items", h.getFoodItems)
		r.Get("/api/holiday-schedule", h.getHolidays)
	})

	// student routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireRoles(models.RoleStudent))

		r.Post("/api/feedback", h.submitFeedback)
	})

	// mess staff and admin routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireRoles(models.RoleMessStaff, models.RoleAdmin))

		r.Post("/api/consumption", h.recordConsumption)
		r.Get("/api/consumption", h.getConsumption)
		r.Post("/api/waste", h.recordWaste)
		r.Get("/api/waste-report", h.getWasteReport)
		r.Get("/api/feedback", h.getFeedback)
	})

	// admin-only routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireRoles(models.RoleAdmin))

		r.Get("/api/admin-dashboard", h.getAdminDashboard)

		r.Get("/api/users", h.getUsers)
		r.Post("/api/users", h.createUser)
		r.Get("/api/users/{id}", h.getUser)
		r.Put("/api/users/{id}", h.updateUser)
		r.Delete("/api/users/{id}", h.deleteUser)

		r.Post("/api/menu", h.createMenuEntry)
		r.Delete("/api/menu/{id}", h.deleteMenuEntry)
		r.Post("/api/food-items", h.createFoodItem)

		r.Get("/api/menu-suggestions", h.getSuggestions)
		r.Post("/api/menu-suggestions", h.createSuggestion)
		r.Get("/api/menu-suggestions/{id}", h.getSuggestion)
		r.Post("/api/menu-suggestions/{id}/accept", h.acceptSuggestion)
		r.Post("/api/menu-suggestions/{id}/reject", h.rejectSuggestion)

		r.Post("/api/holiday-schedule", h.createHoliday)
		r.Delete("/api/holiday-schedule/{id}", h.deleteHoliday)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
