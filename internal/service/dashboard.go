package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
	"github.com/cypherlabdev/corner-alert-service/internal/tracker"
)

// A match scoring at or above this is surfaced as top tier regardless of the
// configured alert threshold.
const eliteScoreFloor = 8.0

// DashboardService projects the live tracked-match table into the read-only
// view served over HTTP, caching the result for the poll cadence.
type DashboardService struct {
	tracker   *tracker.Tracker
	cache     SnapshotCache
	threshold float64
	logger    zerolog.Logger
}

// NewDashboardService creates the dashboard projection service. threshold is
// the alert score threshold used for the HIGH tier cutoff.
func NewDashboardService(matchTracker *tracker.Tracker, cache SnapshotCache, threshold float64, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		tracker:   matchTracker,
		cache:     cache,
		threshold: threshold,
		logger:    logger.With().Str("component", "dashboard_service").Logger(),
	}
}

// GetDashboard returns the current dashboard view, cache-first. A cache
// failure degrades to a fresh projection rather than an error.
func (s *DashboardService) GetDashboard(ctx context.Context) (*models.DashboardSnapshot, error) {
	cached, found, err := s.cache.GetSnapshot(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("snapshot cache read failed, rebuilding")
	} else if found {
		return cached, nil
	}

	snapshot := s.BuildSnapshot()
	if err := s.cache.SetSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn().Err(err).Msg("snapshot cache write failed")
	}
	return snapshot, nil
}

// BuildSnapshot projects every tracked match, highest score first.
func (s *DashboardService) BuildSnapshot() *models.DashboardSnapshot {
	tracked := s.tracker.Snapshot()
	matches := make([]models.DashboardMatch, 0, len(tracked))
	for i := range tracked {
		matches = append(matches, s.project(&tracked[i]))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].FinalScore > matches[j].FinalScore
	})

	return &models.DashboardSnapshot{
		GeneratedAt: time.Now().UTC(),
		Matches:     matches,
	}
}

func (s *DashboardService) project(m *models.TrackedMatch) models.DashboardMatch {
	out := models.DashboardMatch{
		FixtureID:    m.FixtureID,
		Teams:        m.HomeTeam + " vs " + m.AwayTeam,
		League:       m.League,
		Minute:       m.LastMinuteSeen,
		Score:        m.Scoreline(),
		TotalCorners: m.TotalCorners(),
		Alerted:      m.Alerted,
		HomeStats:    m.HomeStats.WholeMatch,
		AwayStats:    m.AwayStats.WholeMatch,
		CornerOdds:   m.CornerOdds,
	}
	if b := m.LastBreakdown; b != nil {
		out.FinalScore = b.FinalScore
		out.QualityScore = b.QualityScore
		out.Conditions = b.Conditions
	}
	out.Priority = s.priorityFor(out.FinalScore)
	return out
}

func (s *DashboardService) priorityFor(score float64) string {
	switch {
	case score >= eliteScoreFloor:
		return models.PriorityElite
	case score >= s.threshold:
		return models.PriorityHigh
	default:
		return models.PriorityWatch
	}
}
