package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(300))

		r.Route("/worlds", func(r chi.Router) {
			r.Post("/", handler.CreateWorld)
			r.Get("/", handler.ListWorlds)

			r.Route("/{worldId}", func(r chi.Router) {
				r.Get("/", handler.GetWorld)
				r.Delete("/", handler.DeleteWorld)
				r.Get("/sample", handler.SamplePoint)
				r.Get("/chunks/{x}/{z}", handler.GetChunk)
			})
		})
	})

	return r
}
