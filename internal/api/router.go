package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clipcast/clipcast/internal/auth"
	"github.com/clipcast/clipcast/pkg/clipcast"
)

// NewRouter assembles the full HTTP surface
func NewRouter(assets clipcast.Service, authService *auth.Service) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", NewAuthHandler(authService).Routes())
		r.Mount("/video", NewVideoHandler(assets, authService.TokenAuth()).Routes())
	})

	return r
}
