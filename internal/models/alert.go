package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertResult classifies a resolved corner bet.
type AlertResult string

const (
	ResultPending AlertResult = "pending"
	ResultWin     AlertResult = "win"
	ResultLoss    AlertResult = "loss"
	ResultRefund  AlertResult = "refund"
)

// Terminal reports whether the result can no longer change.
func (r AlertResult) Terminal() bool {
	return r == ResultWin || r == ResultLoss || r == ResultRefund
}

// Condition is one scoring condition that fired, with the points it
// contributed. Order of conditions in a breakdown is evaluation order.
type Condition struct {
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

// ScoreBreakdown is the scoring engine's output for one evaluation.
// FinalScore = RawScore * TimeMultiplier * QualityMultiplier.
type ScoreBreakdown struct {
	RawScore          float64     `json:"raw_score"`
	TimeMultiplier    float64     `json:"time_multiplier"`
	QualityScore      float64     `json:"quality_score"`
	QualityMultiplier float64     `json:"quality_multiplier"`
	FinalScore        float64     `json:"final_score"`
	FocusTeam         Side        `json:"focus_team"`
	Conditions        []Condition `json:"conditions"`
}

// AlertRecord is the persisted row written once per fired alert. Fields up to
// CreatedAt are immutable at creation; the remainder is set only by the
// outcome resolver.
type AlertRecord struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	FixtureID      int64           `json:"fixture_id" db:"fixture_id"`
	Teams          string          `json:"teams" db:"teams"`
	ScoreAtAlert   string          `json:"score_at_alert" db:"score_at_alert"`
	MinuteSent     int             `json:"minute_sent" db:"minute_sent"`
	CornersAtAlert int             `json:"corners_at_alert" db:"corners_at_alert"`
	EliteScore     float64         `json:"elite_score" db:"elite_score"`
	OverLine       decimal.Decimal `json:"over_line" db:"over_line"`
	OverOdds       decimal.Decimal `json:"over_odds" db:"over_odds"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`

	FinalCorners  int         `json:"final_corners" db:"final_corners"`
	Result        AlertResult `json:"result" db:"result"`
	CheckedAt     time.Time   `json:"checked_at" db:"checked_at"`
	MatchFinished bool        `json:"match_finished" db:"match_finished"`
}

// PerformanceStats aggregates resolved alert outcomes for reporting.
type PerformanceStats struct {
	TotalAlerts int     `json:"total_alerts" db:"total_alerts"`
	Wins        int     `json:"wins" db:"wins"`
	Losses      int     `json:"losses" db:"losses"`
	Refunds     int     `json:"refunds" db:"refunds"`
	Pending     int     `json:"pending" db:"pending"`
	WinRate     float64 `json:"win_rate" db:"-"`
}
