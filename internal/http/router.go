package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"beadvault/internal/http/handlers"
	"beadvault/internal/metrics"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(metrics.Middleware)

	r.With(RateLimitMiddleware).Post("/unlock", handlers.UnlockHandler)
	r.Get("/metrics", metrics.Handler().ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Group(func(r chi.Router) {
		r.Use(GateMiddleware)

		r.Get("/items", handlers.GetItemsHandler)
		r.Post("/items", handlers.CreateItemHandler)
		r.Post("/items/import", handlers.ImportReferenceHandler)
		r.Post("/items/{id}/consume", handlers.ConsumeItemHandler)
		r.Put("/items/{id}/color", handlers.RecolorItemHandler)
		r.Delete("/items/{id}", handlers.DeleteItemHandler)

		r.Get("/activity", handlers.GetActivityHandler)
		r.Get("/stats", handlers.GetStatsHandler)
	})

	return r
}
