package tracker

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// Decision is the outcome of observing one polling-cycle snapshot.
type Decision string

const (
	DecisionNew             Decision = "new"
	DecisionUpdated         Decision = "updated"
	DecisionIgnoredTooEarly Decision = "ignored-too-early"
	DecisionIgnoredFinished Decision = "ignored-finished"
)

type entry struct {
	match    models.TrackedMatch
	finished bool
}

// Tracker is the process-wide table of matches currently being monitored.
// The polling loop is its sole writer; the dashboard reads point-in-time
// copies via Snapshot. A fixture id maps to at most one tracked match and the
// alerted flag transitions false to true exactly once.
type Tracker struct {
	mu              sync.RWMutex
	matches         map[int64]*entry
	discoveryMinute int
	grace           time.Duration
	now             func() time.Time
	logger          zerolog.Logger
}

// New creates a tracker. Matches are only picked up once they reach
// discoveryMinute, and survive absence from the live feed for up to grace
// before eviction treats them as finished.
func New(discoveryMinute int, grace time.Duration, logger zerolog.Logger) *Tracker {
	return &Tracker{
		matches:         make(map[int64]*entry),
		discoveryMinute: discoveryMinute,
		grace:           grace,
		now:             time.Now,
		logger:          logger.With().Str("component", "tracker").Logger(),
	}
}

// Observe ingests one polling cycle's snapshot of a live match. Unseen
// fixtures past the discovery floor are tracked; known fixtures get their
// minute, scoreline and last-seen time refreshed.
func (t *Tracker) Observe(snapshot *models.MatchSnapshot) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, tracked := t.matches[snapshot.FixtureID]

	if snapshot.Status == models.StatusFinished {
		if tracked {
			existing.finished = true
		}
		return DecisionIgnoredFinished
	}

	if !tracked {
		if snapshot.Status != models.StatusLive || snapshot.Minute < t.discoveryMinute {
			return DecisionIgnoredTooEarly
		}
		t.matches[snapshot.FixtureID] = &entry{
			match: models.TrackedMatch{
				FixtureID:      snapshot.FixtureID,
				HomeTeam:       snapshot.HomeTeam,
				AwayTeam:       snapshot.AwayTeam,
				League:         snapshot.League,
				HomeScore:      snapshot.HomeScore,
				AwayScore:      snapshot.AwayScore,
				FirstSeenMin:   snapshot.Minute,
				LastMinuteSeen: snapshot.Minute,
				LastSeenAt:     t.now(),
			},
		}
		t.logger.Info().
			Int64("fixture_id", snapshot.FixtureID).
			Str("teams", snapshot.Teams()).
			Int("minute", snapshot.Minute).
			Msg("tracking new match")
		return DecisionNew
	}

	if snapshot.Minute > existing.match.LastMinuteSeen {
		existing.match.LastMinuteSeen = snapshot.Minute
	}
	existing.match.HomeScore = snapshot.HomeScore
	existing.match.AwayScore = snapshot.AwayScore
	existing.match.LastSeenAt = t.now()
	return DecisionUpdated
}

// Record attaches the latest statistics, odds and score breakdown to a
// tracked match. The breakdown is never mutated after this call, so readers
// of copies may share it.
func (t *Tracker) Record(
	fixtureID int64,
	home, away models.StatSnapshot,
	odds []models.CornerQuote,
	breakdown *models.ScoreBreakdown,
) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.matches[fixtureID]
	if !ok {
		return
	}
	e.match.HomeStats = home
	e.match.AwayStats = away
	e.match.CornerOdds = odds
	e.match.LastBreakdown = breakdown
}

// MarkAlerted flips the alerted flag and reports whether this call performed
// the transition. It returns false for already-alerted and unknown fixtures,
// so at most one caller ever proceeds to dispatch.
func (t *Tracker) MarkAlerted(fixtureID int64, minute int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.matches[fixtureID]
	if !ok || e.match.Alerted {
		return false
	}
	e.match.Alerted = true
	e.match.AlertMinute = minute
	return true
}

// Lookup returns a copy of the tracked match for the fixture.
func (t *Tracker) Lookup(fixtureID int64) (models.TrackedMatch, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.matches[fixtureID]
	if !ok {
		return models.TrackedMatch{}, false
	}
	return e.match, true
}

// TrackedIDs returns the fixture ids currently being monitored.
func (t *Tracker) TrackedIDs() []int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.matches))
	for id := range t.matches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EvictStale removes matches that finished or have been absent from the live
// set for longer than the grace period. This is the only way a tracked match
// is destroyed; a fixture evicted here re-enters as a fresh match with the
// alerted flag reset.
func (t *Tracker) EvictStale(liveFixtureIDs map[int64]bool) []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var evicted []int64
	for id, e := range t.matches {
		if liveFixtureIDs[id] && !e.finished {
			continue
		}
		if e.finished || now.Sub(e.match.LastSeenAt) > t.grace {
			delete(t.matches, id)
			evicted = append(evicted, id)
			t.logger.Info().
				Int64("fixture_id", id).
				Bool("finished", e.finished).
				Bool("alerted", e.match.Alerted).
				Msg("evicted match")
		}
	}
	sort.Slice(evicted, func(i, j int) bool { return evicted[i] < evicted[j] })
	return evicted
}

// Snapshot returns point-in-time copies of every tracked match for read-only
// consumers, ordered by fixture id.
func (t *Tracker) Snapshot() []models.TrackedMatch {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.TrackedMatch, 0, len(t.matches))
	for _, e := range t.matches {
		out = append(out, e.match)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FixtureID < out[j].FixtureID })
	return out
}

// Len returns the number of tracked matches.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.matches)
}
