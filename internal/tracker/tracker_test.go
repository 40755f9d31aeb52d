package tracker

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// testTrackerSetup is a helper struct to hold test dependencies
type testTrackerSetup struct {
	tracker *Tracker
	clock   time.Time
}

// setupTestTracker creates a tracker with a controllable clock
func setupTestTracker(t *testing.T) *testTrackerSetup {
	setup := &testTrackerSetup{
		tracker: New(70, 90*time.Second, zerolog.Nop()),
		clock:   time.Date(2025, 3, 8, 20, 0, 0, 0, time.UTC),
	}
	setup.tracker.now = func() time.Time { return setup.clock }
	return setup
}

func (s *testTrackerSetup) advance(d time.Duration) {
	s.clock = s.clock.Add(d)
}

func liveSnapshot(fixtureID int64, minute int) *models.MatchSnapshot {
	return &models.MatchSnapshot{
		FixtureID: fixtureID,
		Minute:    minute,
		HomeTeam:  "Team A",
		AwayTeam:  "Team B",
		League:    "Premier League",
		Status:    models.StatusLive,
	}
}

// TestObserve_DiscoveryFloor tests that matches are only picked up past the
// discovery minute
func TestObserve_DiscoveryFloor(t *testing.T) {
	setup := setupTestTracker(t)

	assert.Equal(t, DecisionIgnoredTooEarly, setup.tracker.Observe(liveSnapshot(1, 69)))
	assert.Equal(t, 0, setup.tracker.Len())

	assert.Equal(t, DecisionNew, setup.tracker.Observe(liveSnapshot(1, 70)))
	assert.Equal(t, 1, setup.tracker.Len())

	assert.Equal(t, DecisionUpdated, setup.tracker.Observe(liveSnapshot(1, 71)))
}

// TestObserve_NotStartedIgnored tests that pre-match fixtures are ignored
func TestObserve_NotStartedIgnored(t *testing.T) {
	setup := setupTestTracker(t)

	snapshot := liveSnapshot(1, 75)
	snapshot.Status = models.StatusNotStarted

	assert.Equal(t, DecisionIgnoredTooEarly, setup.tracker.Observe(snapshot))
	assert.Equal(t, 0, setup.tracker.Len())
}

// TestObserve_UpdateKeepsMaxMinute tests that a stale minute never rewinds
// the tracked state
func TestObserve_UpdateKeepsMaxMinute(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(1, 80))
	setup.tracker.Observe(liveSnapshot(1, 78))

	tracked, ok := setup.tracker.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 80, tracked.LastMinuteSeen)
	assert.Equal(t, 80, tracked.FirstSeenMin)
}

// TestObserve_UpdateRefreshesScore tests scoreline updates
func TestObserve_UpdateRefreshesScore(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(1, 80))

	snapshot := liveSnapshot(1, 82)
	snapshot.HomeScore = 2
	snapshot.AwayScore = 1
	setup.tracker.Observe(snapshot)

	tracked, ok := setup.tracker.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 2, tracked.HomeScore)
	assert.Equal(t, 1, tracked.AwayScore)
}

// TestMarkAlerted_ExactlyOnce tests the single false-to-true transition
func TestMarkAlerted_ExactlyOnce(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(1, 84))

	assert.True(t, setup.tracker.MarkAlerted(1, 84))
	assert.False(t, setup.tracker.MarkAlerted(1, 85))
	assert.False(t, setup.tracker.MarkAlerted(99, 84))

	tracked, ok := setup.tracker.Lookup(1)
	require.True(t, ok)
	assert.True(t, tracked.Alerted)
	assert.Equal(t, 84, tracked.AlertMinute)
}

// TestRecord_AttachesStats tests stat and breakdown attachment
func TestRecord_AttachesStats(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(1, 80))

	home := models.StatSnapshot{WholeMatch: models.StatLine{models.StatCorners: 6}}
	away := models.StatSnapshot{WholeMatch: models.StatLine{models.StatCorners: 3}}
	breakdown := &models.ScoreBreakdown{FinalScore: 12.5}

	setup.tracker.Record(1, home, away, nil, breakdown)

	tracked, ok := setup.tracker.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 9, tracked.TotalCorners())
	require.NotNil(t, tracked.LastBreakdown)
	assert.Equal(t, 12.5, tracked.LastBreakdown.FinalScore)

	// Recording against an unknown fixture is a no-op
	setup.tracker.Record(99, home, away, nil, breakdown)
	_, ok = setup.tracker.Lookup(99)
	assert.False(t, ok)
}

// TestEvictStale_FinishedMatch tests immediate eviction of finished matches
func TestEvictStale_FinishedMatch(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(1, 80))

	finished := liveSnapshot(1, 90)
	finished.Status = models.StatusFinished
	assert.Equal(t, DecisionIgnoredFinished, setup.tracker.Observe(finished))

	evicted := setup.tracker.EvictStale(map[int64]bool{1: true})
	assert.Equal(t, []int64{1}, evicted)
	assert.Equal(t, 0, setup.tracker.Len())
}

// TestEvictStale_GracePeriod tests that absence from the live set is only
// fatal past the grace period
func TestEvictStale_GracePeriod(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(1, 80))

	// Absent, but still within grace
	setup.advance(60 * time.Second)
	evicted := setup.tracker.EvictStale(map[int64]bool{})
	assert.Empty(t, evicted)
	assert.Equal(t, 1, setup.tracker.Len())

	// Past the grace period
	setup.advance(60 * time.Second)
	evicted = setup.tracker.EvictStale(map[int64]bool{})
	assert.Equal(t, []int64{1}, evicted)
	assert.Equal(t, 0, setup.tracker.Len())
}

// TestEvictStale_ReappearanceIsFresh tests that an evicted fixture re-enters
// with the alerted flag reset
func TestEvictStale_ReappearanceIsFresh(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(1, 84))
	require.True(t, setup.tracker.MarkAlerted(1, 84))

	setup.advance(2 * time.Minute)
	setup.tracker.EvictStale(map[int64]bool{})

	assert.Equal(t, DecisionNew, setup.tracker.Observe(liveSnapshot(1, 85)))
	tracked, ok := setup.tracker.Lookup(1)
	require.True(t, ok)
	assert.False(t, tracked.Alerted)
}

// TestEvictStale_LiveMatchSurvives tests that present matches are untouched
func TestEvictStale_LiveMatchSurvives(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(1, 80))
	setup.tracker.Observe(liveSnapshot(2, 81))

	setup.advance(5 * time.Minute)
	evicted := setup.tracker.EvictStale(map[int64]bool{1: true})

	assert.Equal(t, []int64{2}, evicted)
	assert.Equal(t, 1, setup.tracker.Len())
}

// TestSnapshot_ReturnsCopies tests that snapshot mutation does not leak into
// tracked state
func TestSnapshot_ReturnsCopies(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(2, 80))
	setup.tracker.Observe(liveSnapshot(1, 81))

	snapshots := setup.tracker.Snapshot()
	require.Len(t, snapshots, 2)
	assert.Equal(t, int64(1), snapshots[0].FixtureID)
	assert.Equal(t, int64(2), snapshots[1].FixtureID)

	snapshots[0].HomeScore = 99
	tracked, _ := setup.tracker.Lookup(1)
	assert.Equal(t, 0, tracked.HomeScore)
}

// TestTrackedIDs_Sorted tests id enumeration
func TestTrackedIDs_Sorted(t *testing.T) {
	setup := setupTestTracker(t)

	setup.tracker.Observe(liveSnapshot(7, 80))
	setup.tracker.Observe(liveSnapshot(3, 80))
	setup.tracker.Observe(liveSnapshot(5, 80))

	assert.Equal(t, []int64{3, 5, 7}, setup.tracker.TrackedIDs())
}
