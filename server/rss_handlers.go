package server

import (
	"log"
	"net/http"

	"github.com/zenflow/zenflow/pkg/feed"
)

const defaultRSSLimit = 100

// rssHandler serves the RSS feed of recently captured leads
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	leads, err := s.db.GetRecentLeads(r.Context(), defaultRSSLimit)
	if err != nil {
		log.Printf("[ERROR] failed to get leads for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	generator := feed.NewGenerator(s.config.GetBaseURL())
	rss, err := generator.GenerateRSS(leads, s.now())
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
