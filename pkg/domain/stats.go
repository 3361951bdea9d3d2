package domain

import "time"

// ChartBar is one day column of the weekly leads chart
type ChartBar struct {
	Day    string
	Count  int
	Height int           // percent of the busiest day, 0-100
	Delay  time.Duration // staggered reveal delay
}

// DayCount is the number of leads captured on a calendar day
type DayCount struct {
	Day   time.Time
	Count int
}

// Stats holds dashboard counters
type Stats struct {
	TotalLeads int64 `json:"total_leads"`
	Today      int64 `json:"today"`
}
