package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/reteki/outreach/internal/engine"
	"github.com/reteki/outreach/internal/history"
	"github.com/reteki/outreach/internal/outreach"
	"github.com/reteki/outreach/internal/store"
	"github.com/reteki/outreach/internal/templates"
)

// maxBodyBytes bounds request bodies. Pasted profiles are the largest input.
const maxBodyBytes = 1 << 20

// Server is the outreach HTTP API server.
type Server struct {
	db        *store.DB
	engine    *engine.Engine
	templates *templates.Store
	sent      *history.Log
	router    chi.Router
	version   string
	started   time.Time
}

// New creates a new Server over the given database, engine and template store.
func New(db *store.DB, eng *engine.Engine, tmpl *templates.Store, version string) *Server {
	s := &Server{
		db:        db,
		engine:    eng,
		templates: tmpl,
		sent:      history.New(db),
		version:   version,
		started:   time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/extract", s.handleExtract)
		r.Post("/generate", s.handleGenerate)
		r.Post("/compose", s.handleCompose)

		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{role}", s.handleGetTemplate)
		r.Put("/templates/{role}", s.handleSaveTemplate)
		r.Delete("/templates/{role}", s.handleResetTemplate)

		r.Get("/sent", s.handleListSent)
		r.Post("/sent", s.handleAddSent)
		r.Delete("/sent", s.handleClearSent)
		r.Get("/sent/stats", s.handleSentStats)
		r.Get("/sent/export.csv", s.handleExportSent)
		r.Delete("/sent/{id}", s.handleDeleteSent)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// User-facing messages for model failures. Raw payloads stay in the log.
const (
	msgUnavailable = "El servicio de IA no está disponible. Inténtalo de nuevo más tarde."
	msgBadFormat   = "La respuesta de la IA no tuvo el formato esperado."
)

// writeEngineError maps engine and validation errors onto HTTP responses.
func writeEngineError(w http.ResponseWriter, err error) {
	var pe *engine.ProviderError
	var me *engine.MalformedResponseError
	switch {
	case errors.As(err, &pe):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msgUnavailable, "kind": "provider"})
	case errors.As(err, &me):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msgBadFormat, "kind": "malformed_response"})
	case errors.Is(err, templates.ErrInvalidTemplate),
		errors.Is(err, outreach.ErrUnknownRole),
		errors.Is(err, outreach.ErrUnknownChannel):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, history.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
