package models

import "time"

// Priority tiers shown on the dashboard.
const (
	PriorityElite = "ELITE"
	PriorityHigh  = "HIGH"
	PriorityWatch = "WATCH"
)

// DashboardMatch is the read-only projection of one tracked match.
type DashboardMatch struct {
	FixtureID    int64         `json:"fixture_id"`
	Teams        string        `json:"teams"`
	League       string        `json:"league"`
	Minute       int           `json:"minute"`
	Score        string        `json:"score"`
	TotalCorners int           `json:"total_corners"`
	FinalScore   float64       `json:"final_score"`
	QualityScore float64       `json:"quality_score"`
	Priority     string        `json:"priority"`
	Alerted      bool          `json:"alerted"`
	Conditions   []Condition   `json:"conditions,omitempty"`
	HomeStats    StatLine      `json:"home_stats,omitempty"`
	AwayStats    StatLine      `json:"away_stats,omitempty"`
	CornerOdds   []CornerQuote `json:"corner_odds,omitempty"`
}

// DashboardSnapshot is the cached point-in-time view served to readers.
type DashboardSnapshot struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Matches     []DashboardMatch `json:"matches"`
}
