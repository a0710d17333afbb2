// Package api exposes persisted clustering runs and country profiles over a
// read-only HTTP interface.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/store"
)

// Server serves cluster runs and profiles from a store.
type Server struct {
	store store.Store
}

// NewServer creates a Server backed by st.
func NewServer(st store.Store) *Server {
	return &Server{store: st}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{runID}/profiles", s.handleListProfiles)
		r.Get("/runs/{runID}/profiles/{country}", s.handleGetProfile)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.respondStoreError(w, err, "list runs")
		return
	}
	respondJSON(w, http.StatusOK, runs)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.resolveRunID(w, r)
	if !ok {
		return
	}

	profiles, err := s.store.ListProfiles(r.Context(), runID)
	if err != nil {
		s.respondStoreError(w, err, "list profiles")
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.resolveRunID(w, r)
	if !ok {
		return
	}
	country := chi.URLParam(r, "country")

	profile, err := s.store.GetProfile(r.Context(), runID, country)
	if err != nil {
		s.respondStoreError(w, err, "get profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// resolveRunID maps the special run ID "latest" to the most recent saved run.
func (s *Server) resolveRunID(w http.ResponseWriter, r *http.Request) (string, bool) {
	runID := chi.URLParam(r, "runID")
	if runID != "latest" {
		return runID, true
	}

	id, err := s.store.LatestRunID(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "resolve latest run")
		return "", false
	}
	return id, true
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error, op string) {
	if eris.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	zap.L().Error("api: store error", zap.String("op", op), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal error")
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
