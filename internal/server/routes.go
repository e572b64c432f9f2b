package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers the API routes.
func SetupRoutes(router chi.Router, h *Handlers) {
	router.Get("/healthz", h.Health)
	router.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/smells", h.ListSmells)
		r.Get("/smells/{id}", h.GetSmell)

		r.Post("/detect", h.DetectDocument)
		r.Post("/detect/upload", h.DetectUpload)

		if h.store != nil {
			r.Route("/runs", func(r chi.Router) {
				r.Get("/", h.ListRuns)
				r.Get("/{id}", h.GetRun)
				r.Delete("/{id}", h.DeleteRun)
			})
		}
	})
}
