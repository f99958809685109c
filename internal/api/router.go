package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Hard ceiling on one extraction; the pipeline itself has no internal
	// retry loops, so a hung upstream would otherwise block forever.
	r.Use(middleware.Timeout(time.Duration(s.config.RequestTimeout) * time.Second))

	r.Get("/metrics", promhttp.Handler().(http.HandlerFunc))
	r.Get("/health", s.handleHealthCheck)

	r.Post("/extract", s.handleExtract)
	r.Post("/categorize", s.handleCategorize)

	return r
}
