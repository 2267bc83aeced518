package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Fallback handlers are registered before any
// sub-router is mounted so that the sub-routers inherit them.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	router.Use(middleware.Recoverer)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	router.Get("/", h.apiIsRunning)
	router.Get("/api/version", h.getServerVersion)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	router.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rateLimitCredentials)
			r.Post("/", h.register)
			r.Post("/login", h.login)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.updateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth, h.admin)
			r.Get("/", h.listUsers)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
		})
	})

	router.Route("/api/orders", func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/", h.createOrder)
		r.Get("/myorders", h.listMyOrders)
		r.Get("/{id}", h.getOrder)
		r.With(h.verifyPaymentSignature).Put("/{id}/pay", h.payOrder)

		r.Group(func(r chi.Router) {
			r.Use(h.admin)
			r.Get("/", h.listOrders)
			r.Put("/{id}/deliver", h.deliverOrder)
		})
	})

	return router
}
