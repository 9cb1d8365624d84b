// internal/server/routes.go
package server

import (
	"net/http"
	"time"

	apperrors "activity-signup/internal/common/errors"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.redirectToIndex)

	if s.handlers.ListActivities != nil {
		mux.Handle("GET /activities", s.handlers.ListActivities)
	}
	if s.handlers.Signup != nil {
		mux.Handle("POST /activities/{name}/signup", s.handlers.Signup)
	}
	if s.handlers.Unregister != nil {
		mux.Handle("POST /activities/{name}/unregister", s.handlers.Unregister)
	}

	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /ready", s.readiness)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) redirectToIndex(w http.ResponseWriter, r *http.Request) {
	target := s.config.StaticIndexPath
	if target == "" {
		target = "/static/index.html"
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) readiness(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", map[string]interface{}{
				"error": err.Error(),
			})
			apperrors.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
	}
	apperrors.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}
