package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/zenflow/zenflow/pkg/domain"
	"github.com/zenflow/zenflow/pkg/leadfeed"
)

const (
	chartDays    = 7
	chartStagger = 100 * time.Millisecond
)

// navItem is a sidebar entry
type navItem struct {
	Name  string
	Title string
	Icon  string
}

var navItems = []navItem{
	{Name: "dashboard", Title: "Dashboard", Icon: "layout-dashboard"},
	{Name: "automations", Title: "Automations", Icon: "zap"},
	{Name: "leads", Title: "Leads", Icon: "users"},
	{Name: "analytics", Title: "Analytics", Icon: "bar-chart-3"},
}

// dashboardHandler renders the dashboard page, the active nav item comes from the route
func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	page := r.PathValue("page")
	if _, ok := lo.Find(navItems, func(n navItem) bool { return n.Name == page }); !ok {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	now := s.now()

	stats, err := s.loadStats(ctx, now)
	if err != nil {
		log.Printf("[WARN] failed to load stats: %v", err)
	}

	counts, err := s.db.CountLeadsByDay(ctx, now, chartDays)
	if err != nil {
		log.Printf("[WARN] failed to load chart data: %v", err)
		counts = emptyWeek(now)
	}

	data := struct {
		ActivePage string
		Nav        []navItem
		Version    string
		Stats      domain.Stats
		Bars       []domain.ChartBar
		Leads      []leadView
		Transition string
	}{
		ActivePage: page,
		Nav:        navItems,
		Version:    s.version,
		Stats:      stats,
		Bars:       buildChartBars(counts),
		Leads:      lo.Map(s.feed.Snapshot(), func(l domain.Lead, _ int) leadView { return leadView{Lead: l} }),
		Transition: leadfeed.Transition,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, templateDashboard, data); err != nil {
		log.Printf("[ERROR] failed to render dashboard: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// loadStats collects dashboard counters, today starts at local midnight
func (s *Server) loadStats(ctx context.Context, now time.Time) (domain.Stats, error) {
	total, err := s.db.CountLeads(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count leads: %w", err)
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.db.CountLeadsSince(ctx, midnight)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count today leads: %w", err)
	}
	return domain.Stats{TotalLeads: total, Today: today}, nil
}

// buildChartBars turns day counts into bars scaled to the busiest day, each revealed 100ms after the previous one
func buildChartBars(counts []domain.DayCount) []domain.ChartBar {
	busiest := lo.Max(lo.Map(counts, func(c domain.DayCount, _ int) int { return c.Count }))
	return lo.Map(counts, func(c domain.DayCount, i int) domain.ChartBar {
		height := 0
		if busiest > 0 {
			height = c.Count * 100 / busiest
		}
		return domain.ChartBar{
			Day:    c.Day.Weekday().String()[:3],
			Count:  c.Count,
			Height: height,
			Delay:  time.Duration(i) * chartStagger,
		}
	})
}

// emptyWeek returns zero counts for the chart window ending today
func emptyWeek(now time.Time) []domain.DayCount {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	res := make([]domain.DayCount, chartDays)
	for i := range res {
		res[i].Day = today.AddDate(0, 0, i-chartDays+1)
	}
	return res
}
