package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MatchStatus is the lifecycle state of a fixture as reported by the feed.
type MatchStatus string

const (
	StatusNotStarted MatchStatus = "not_started"
	StatusLive       MatchStatus = "live"
	StatusFinished   MatchStatus = "finished"
)

// Side identifies a team within a fixture.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = "none"
)

// MatchSnapshot is one polling cycle's view of a live match.
type MatchSnapshot struct {
	FixtureID int64       `json:"fixture_id"`
	Minute    int         `json:"minute"`
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
	League    string      `json:"league"`
	Status    MatchStatus `json:"status"`
	Favorite  Side        `json:"favorite"`
}

// Teams returns the display form "Home vs Away".
func (m *MatchSnapshot) Teams() string {
	return fmt.Sprintf("%s vs %s", m.HomeTeam, m.AwayTeam)
}

// Scoreline returns the display form "1-0".
func (m *MatchSnapshot) Scoreline() string {
	return fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore)
}

// GoalDiff returns home score minus away score.
func (m *MatchSnapshot) GoalDiff() int {
	return m.HomeScore - m.AwayScore
}

// CornerQuote is a single Asian corner line quoted by a bookmaker.
type CornerQuote struct {
	Bookmaker string          `json:"bookmaker"`
	Line      decimal.Decimal `json:"line"`
	OverOdds  decimal.Decimal `json:"over_odds"`
	UnderOdds decimal.Decimal `json:"under_odds"`
	Suspended bool            `json:"suspended"`
}

// TeamStat is one statistic value attributed to one side of a fixture.
type TeamStat struct {
	Kind  StatKind `json:"kind"`
	Side  Side     `json:"side"`
	Value int      `json:"value"`
}

// PeriodStats carries statistics scoped to a single playing period.
// Description comes straight from the feed ("1st-half", "2nd-half", ...).
type PeriodStats struct {
	Description string     `json:"description"`
	Stats       []TeamStat `json:"stats"`
}

// MatchPayload is the full per-fixture view the feed delivers in one cycle:
// the snapshot, whole-match statistics, optional period-scoped statistics and
// the currently quoted corner lines.
type MatchPayload struct {
	Snapshot   MatchSnapshot `json:"snapshot"`
	Statistics []TeamStat    `json:"statistics"`
	Periods    []PeriodStats `json:"periods,omitempty"`
	CornerOdds []CornerQuote `json:"corner_odds,omitempty"`
}

// TrackedMatch is the process-wide state kept per fixture while it is being
// monitored. It is owned and mutated exclusively by the tracker; everything
// else sees copies.
type TrackedMatch struct {
	FixtureID      int64           `json:"fixture_id"`
	HomeTeam       string          `json:"home_team"`
	AwayTeam       string          `json:"away_team"`
	League         string          `json:"league"`
	HomeScore      int             `json:"home_score"`
	AwayScore      int             `json:"away_score"`
	FirstSeenMin   int             `json:"first_seen_minute"`
	LastMinuteSeen int             `json:"last_minute_seen"`
	LastSeenAt     time.Time       `json:"last_seen_at"`
	LastBreakdown  *ScoreBreakdown `json:"last_breakdown,omitempty"`
	HomeStats      StatSnapshot    `json:"home_stats"`
	AwayStats      StatSnapshot    `json:"away_stats"`
	CornerOdds     []CornerQuote   `json:"corner_odds,omitempty"`
	Alerted        bool            `json:"alerted"`
	AlertMinute    int             `json:"alert_minute,omitempty"`
}

// TotalCorners returns the combined corner count from both teams' whole-match
// statistics.
func (t *TrackedMatch) TotalCorners() int {
	return t.HomeStats.Whole(StatCorners) + t.AwayStats.Whole(StatCorners)
}

// Scoreline returns the display form "1-0".
func (t *TrackedMatch) Scoreline() string {
	return fmt.Sprintf("%d-%d", t.HomeScore, t.AwayScore)
}
