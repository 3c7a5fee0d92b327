package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/reteki/outreach/internal/history"
	"github.com/reteki/outreach/internal/links"
	"github.com/reteki/outreach/internal/outreach"
)

type draftRequest struct {
	Profile outreach.Profile `json:"profile"`
	Role    string           `json:"role"`
	Channel string           `json:"channel"`
}

func (req draftRequest) parse() (outreach.Role, outreach.Channel, error) {
	role, err := outreach.ParseRole(req.Role)
	if err != nil {
		return "", "", err
	}
	channel, err := outreach.ParseChannel(req.Channel)
	if err != nil {
		return "", "", err
	}
	return role, channel, nil
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	profile, err := s.engine.Extract(r.Context(), req.Text)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	role, channel, err := req.parse()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	draft, err := s.engine.Draft(r.Context(), req.Profile, role, channel)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	role, channel, err := req.parse()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	composed := s.engine.Compose(r.Context(), req.Profile, role, channel)
	recs := composed.Links
	if recs == nil {
		recs = []links.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"prompt": composed.Prompt,
		"links":  recs,
	})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.templates.All())
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	role, err := outreach.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.templates.Get(role))
}

func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	role, err := outreach.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	var patch outreach.TemplatePatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	saved, err := s.templates.Save(role, patch)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleResetTemplate(w http.ResponseWriter, r *http.Request) {
	role, err := outreach.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	t, err := s.templates.Reset(role)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleListSent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sortBy := q.Get("sort")
	if sortBy != "" && sortBy != history.SortByDate && sortBy != history.SortByName {
		writeError(w, http.StatusBadRequest, "sort must be date or name")
		return
	}
	order := q.Get("order")
	if order != "" && order != "asc" && order != "desc" {
		writeError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	msgs, err := s.sent.List(history.Query{
		Search: q.Get("q"),
		SortBy: sortBy,
		Asc:    order == "asc",
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if msgs == nil {
		msgs = []outreach.SentMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleAddSent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "name and message required")
		return
	}

	m, added, err := s.sent.Add(req.Name, req.Message)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if !added {
		writeJSON(w, http.StatusOK, map[string]any{"status": "duplicate"})
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleDeleteSent(w http.ResponseWriter, r *http.Request) {
	if err := s.sent.Delete(chi.URLParam(r, "id")); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleClearSent(w http.ResponseWriter, r *http.Request) {
	n, err := s.sent.Clear()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "cleared", "deleted": n})
}

func (s *Server) handleSentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.sent.Stats()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleExportSent(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.sent.List(history.Query{})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	filename := fmt.Sprintf("mensajes_enviados_%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := history.ExportCSV(w, msgs); err != nil {
		log.Printf("sent: export csv: %v", err)
	}
}
