package tracker

import (
	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// GateConfig holds the timing gate knobs.
type GateConfig struct {
	ScoreThreshold float64
	MinMinute      int
}

// Window returns the two admissible whole minutes. The target window on a
// continuous clock is [MinMinute-0.5, MinMinute+0.25]; with integer match
// minutes from the feed the canonical rendering is {MinMinute-1, MinMinute},
// i.e. {84, 85} for the default configuration.
func (c GateConfig) Window() (int, int) {
	return c.MinMinute - 1, c.MinMinute
}

// ShouldFire decides whether this polling cycle is the one allowed to fire
// for the match: not yet alerted, current minute inside the target window,
// and final score at or above the threshold. The caller must mark the match
// alerted before any notification dispatch completes so that a slow or
// retried dispatch cannot produce a second firing.
//
// A poll cadence coarse enough to jump the whole window between two
// consecutive cycles means the match never fires; that is an accepted
// limitation, handled operationally by the tight poll interval.
func ShouldFire(tracked *models.TrackedMatch, currentMinute int, breakdown *models.ScoreBreakdown, cfg GateConfig) bool {
	if tracked == nil || breakdown == nil || tracked.Alerted {
		return false
	}
	lo, hi := cfg.Window()
	if currentMinute < lo || currentMinute > hi {
		return false
	}
	return breakdown.FinalScore >= cfg.ScoreThreshold
}
