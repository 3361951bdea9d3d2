package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/rest"
	"github.com/samber/lo"

	"github.com/zenflow/zenflow/pkg/domain"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	exportLimit         = 10000
)

// leadResponse is the JSON shape of a lead
type leadResponse struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	Status    string    `json:"status"`
	Badge     string    `json:"badge"`
	CreatedAt time.Time `json:"created_at"`
}

// tickResponse reports the outcome of an on-demand tick
type tickResponse struct {
	Emitted bool           `json:"emitted"`
	Lead    *leadResponse  `json:"lead,omitempty"`
	Evicted []leadResponse `json:"evicted"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    s.now().UTC(),
	})
}

// leadsHandler returns the current live list, newest first
func (s *Server) leadsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, toLeadResponses(s.feed.Snapshot()))
}

// leadHistoryHandler returns recorded leads, newest first
func (s *Server) leadHistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = min(l, maxHistoryLimit)
	}

	leads, err := s.db.GetRecentLeads(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to get lead history: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, toLeadResponses(leads))
}

// updateLeadStatusHandler changes the status of a recorded lead, body is {"status": "..."}
func (s *Server) updateLeadStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		renderError(w, r, errors.New("status is required"), http.StatusBadRequest)
		return
	}

	if err := s.db.UpdateLeadStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to update status of lead %s: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	log.Printf("[DEBUG] lead %s status set to %q", id, status)
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "status": status})
}

// statsHandler returns dashboard counters
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.loadStats(r.Context(), s.now())
	if err != nil {
		log.Printf("[ERROR] failed to load stats: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// tickHandler runs one feed tick immediately
func (s *Server) tickHandler(w http.ResponseWriter, r *http.Request) {
	d := s.feed.Tick(r.Context())
	resp := tickResponse{Emitted: d.Emitted, Evicted: toLeadResponses(d.Event.Evicted)}
	if d.Event.Added != nil {
		lead := toLeadResponse(*d.Event.Added)
		resp.Lead = &lead
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// exportLeadsHandler streams the lead history as CSV
func (s *Server) exportLeadsHandler(w http.ResponseWriter, r *http.Request) {
	leads, err := s.db.GetRecentLeads(r.Context(), exportLimit)
	if err != nil {
		log.Printf("[ERROR] failed to get leads for export: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)

	cw := csv.NewWriter(w)
	records := [][]string{{"Handle", "Status", "Captured At"}}
	for _, l := range leads {
		records = append(records, []string{l.Handle, l.Status, l.CreatedAt.UTC().Format(time.RFC3339)})
	}
	if err := cw.WriteAll(records); err != nil {
		log.Printf("[ERROR] failed to write CSV export: %v", err)
	}
}

func toLeadResponse(l domain.Lead) leadResponse {
	return leadResponse{ID: l.ID, Handle: l.Handle, Status: l.Status, Badge: l.Badge(), CreatedAt: l.CreatedAt}
}

func toLeadResponses(leads []domain.Lead) []leadResponse {
	return lo.Map(leads, func(l domain.Lead, _ int) leadResponse { return toLeadResponse(l) })
}
