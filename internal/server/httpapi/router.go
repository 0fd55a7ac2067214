package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/mpdash/internal/common"
)

// Handler builds the routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", common.AuthorizationHeaderName, common.RequestIDHeaderName},
		ExposedHeaders: []string{common.RequestIDHeaderName},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/health", s.health)
	r.Post("/auth/login/access-token", s.login)
	r.Post("/auth/signup", s.signup)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticator)

		r.Get("/users/me", s.me)
		r.Route("/products", func(r chi.Router) {
			r.Get("/analyze/{article}", s.analyze)
			r.Post("/track", s.track)
			r.Get("/track/user/{id}", s.tracked)
			r.Delete("/track/{id}", s.untrack)
		})
	})

	return r
}
