package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/corner-alert-service/internal/mocks"
	"github.com/cypherlabdev/corner-alert-service/internal/models"
	"github.com/cypherlabdev/corner-alert-service/internal/tracker"
)

// testDashboardSetup is a helper struct to hold test dependencies
type testDashboardSetup struct {
	service   *DashboardService
	tracker   *tracker.Tracker
	mockCache *mocks.MockSnapshotCache
	ctx       context.Context
	ctrl      *gomock.Controller
}

// setupTestDashboard creates a dashboard service with a mocked cache
func setupTestDashboard(t *testing.T) *testDashboardSetup {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockSnapshotCache(ctrl)
	logger := zerolog.Nop()

	matchTracker := tracker.New(70, 90*time.Second, logger)
	dashboardService := NewDashboardService(matchTracker, mockCache, 6.0, logger)

	return &testDashboardSetup{
		service:   dashboardService,
		tracker:   matchTracker,
		mockCache: mockCache,
		ctx:       context.Background(),
		ctrl:      ctrl,
	}
}

func (s *testDashboardSetup) cleanup() {
	s.ctrl.Finish()
}

func (s *testDashboardSetup) trackScored(fixtureID int64, minute int, finalScore float64) {
	s.tracker.Observe(&models.MatchSnapshot{
		FixtureID: fixtureID,
		Minute:    minute,
		HomeTeam:  "Team A",
		AwayTeam:  "Team B",
		Status:    models.StatusLive,
	})
	s.tracker.Record(fixtureID,
		models.StatSnapshot{WholeMatch: models.StatLine{models.StatCorners: 5}},
		models.StatSnapshot{WholeMatch: models.StatLine{models.StatCorners: 4}},
		nil,
		&models.ScoreBreakdown{FinalScore: finalScore, QualityScore: 130},
	)
}

// TestBuildSnapshot_PriorityTiers tests tier assignment and ordering
func TestBuildSnapshot_PriorityTiers(t *testing.T) {
	setup := setupTestDashboard(t)
	defer setup.cleanup()

	setup.trackScored(1, 80, 4.0)  // WATCH
	setup.trackScored(2, 81, 9.5)  // ELITE
	setup.trackScored(3, 82, 6.5)  // HIGH

	snapshot := setup.service.BuildSnapshot()

	require.Len(t, snapshot.Matches, 3)

	// Highest score first
	assert.Equal(t, int64(2), snapshot.Matches[0].FixtureID)
	assert.Equal(t, models.PriorityElite, snapshot.Matches[0].Priority)
	assert.Equal(t, int64(3), snapshot.Matches[1].FixtureID)
	assert.Equal(t, models.PriorityHigh, snapshot.Matches[1].Priority)
	assert.Equal(t, int64(1), snapshot.Matches[2].FixtureID)
	assert.Equal(t, models.PriorityWatch, snapshot.Matches[2].Priority)

	assert.Equal(t, 9, snapshot.Matches[0].TotalCorners)
	assert.Equal(t, "Team A vs Team B", snapshot.Matches[0].Teams)
	assert.False(t, snapshot.GeneratedAt.IsZero())
}

// TestBuildSnapshot_UnscoredMatch tests projection before the first scoring
// cycle
func TestBuildSnapshot_UnscoredMatch(t *testing.T) {
	setup := setupTestDashboard(t)
	defer setup.cleanup()

	setup.tracker.Observe(&models.MatchSnapshot{
		FixtureID: 1,
		Minute:    72,
		Status:    models.StatusLive,
	})

	snapshot := setup.service.BuildSnapshot()

	require.Len(t, snapshot.Matches, 1)
	assert.Equal(t, 0.0, snapshot.Matches[0].FinalScore)
	assert.Equal(t, models.PriorityWatch, snapshot.Matches[0].Priority)
	assert.Empty(t, snapshot.Matches[0].Conditions)
}

// TestGetDashboard_CacheHit tests that a cached snapshot short-circuits the
// projection
func TestGetDashboard_CacheHit(t *testing.T) {
	setup := setupTestDashboard(t)
	defer setup.cleanup()

	cached := &models.DashboardSnapshot{GeneratedAt: time.Now().UTC()}
	setup.mockCache.EXPECT().GetSnapshot(gomock.Any()).Return(cached, true, nil)

	snapshot, err := setup.service.GetDashboard(setup.ctx)

	require.NoError(t, err)
	assert.Same(t, cached, snapshot)
}

// TestGetDashboard_CacheMissRebuilds tests the rebuild-and-store path
func TestGetDashboard_CacheMissRebuilds(t *testing.T) {
	setup := setupTestDashboard(t)
	defer setup.cleanup()

	setup.trackScored(1, 80, 9.5)

	setup.mockCache.EXPECT().GetSnapshot(gomock.Any()).Return(nil, false, nil)
	setup.mockCache.EXPECT().SetSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	snapshot, err := setup.service.GetDashboard(setup.ctx)

	require.NoError(t, err)
	require.Len(t, snapshot.Matches, 1)
	assert.Equal(t, int64(1), snapshot.Matches[0].FixtureID)
}

// TestGetDashboard_CacheFailureDegrades tests that cache errors never fail
// the request
func TestGetDashboard_CacheFailureDegrades(t *testing.T) {
	setup := setupTestDashboard(t)
	defer setup.cleanup()

	setup.trackScored(1, 80, 9.5)

	setup.mockCache.EXPECT().GetSnapshot(gomock.Any()).
		Return(nil, false, errors.New("redis down"))
	setup.mockCache.EXPECT().SetSnapshot(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))

	snapshot, err := setup.service.GetDashboard(setup.ctx)

	require.NoError(t, err)
	require.Len(t, snapshot.Matches, 1)
}
