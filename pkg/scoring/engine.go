package scoring

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
	"github.com/cypherlabdev/corner-alert-service/internal/quality"
)

// Engine evaluates the late-corner scoring matrix against a match snapshot.
type Engine struct {
	params Params
	logger zerolog.Logger
}

// NewEngine creates a scoring engine.
func NewEngine(params Params, logger zerolog.Logger) *Engine {
	return &Engine{
		params: params,
		logger: logger.With().Str("component", "scoring_engine").Logger(),
	}
}

// Score evaluates the ordered condition matrix for the focus team and returns
// the full breakdown. It is a pure function of its inputs and never fails:
// missing whole-match statistics count as zero and conditions that need
// unavailable second-half data simply do not fire.
//
// FinalScore = RawScore * time multiplier * quality multiplier. The time
// multiplier is applied exactly once and is multiplicative with, not additive
// to, the quality multiplier.
func (e *Engine) Score(
	match *models.MatchSnapshot,
	home, away models.StatSnapshot,
	focus models.Side,
	rating quality.Rating,
) models.ScoreBreakdown {
	focusStats := home
	if focus == models.SideAway {
		focusStats = away
	}

	b := &breakdownBuilder{}

	e.scoreContext(b, match, focus)
	e.scoreActivity(b, focusStats)
	e.scoreTactical(b, match, focusStats)
	e.scoreCornerBand(b, home, away)

	timeMultiplier := e.timeMultiplier(match.Minute)
	finalScore := b.raw * timeMultiplier * rating.Multiplier

	e.logger.Debug().
		Int64("fixture_id", match.FixtureID).
		Int("minute", match.Minute).
		Float64("raw_score", b.raw).
		Float64("time_multiplier", timeMultiplier).
		Float64("quality_multiplier", rating.Multiplier).
		Float64("final_score", finalScore).
		Int("conditions", len(b.conditions)).
		Msg("scored match")

	return models.ScoreBreakdown{
		RawScore:          b.raw,
		TimeMultiplier:    timeMultiplier,
		QualityScore:      rating.Score,
		QualityMultiplier: rating.Multiplier,
		FinalScore:        finalScore,
		FocusTeam:         focus,
		Conditions:        b.conditions,
	}
}

// breakdownBuilder accumulates fired conditions in evaluation order.
type breakdownBuilder struct {
	raw        float64
	conditions []models.Condition
}

func (b *breakdownBuilder) add(points float64, format string, args ...interface{}) {
	b.raw += points
	b.conditions = append(b.conditions, models.Condition{
		Description: fmt.Sprintf(format, args...),
		Points:      points,
	})
}

// scoreContext evaluates the favorite-pressure conditions. At most one of the
// trailing/drawing conditions fires per match; a favorite trailing by exactly
// one goal outweighs a drawing favorite.
func (e *Engine) scoreContext(b *breakdownBuilder, match *models.MatchSnapshot, focus models.Side) {
	p := e.params

	if match.Favorite != models.SideNone && match.Minute >= p.ContextMinute {
		deficit := favoriteDeficit(match)
		switch {
		case deficit == 1:
			b.add(p.FavoriteTrailingByOne, "Favorite trailing by one after %d'", p.ContextMinute)
		case deficit > 1:
			b.add(p.FavoriteTrailingByMore, "Favorite trailing by %d after %d'", deficit, p.ContextMinute)
		case deficit == 0:
			b.add(p.FavoriteDrawing, "Favorite drawing after %d'", p.ContextMinute)
		}
	}

	if lead := focusLead(match, focus); lead >= 3 {
		b.add(p.LeadingByThreePenalty, "Focus team leading by %d", lead)
	}
}

// scoreActivity evaluates the recent-activity conditions. Second-half values
// are preferred; when unavailable the whole-match total is compared against a
// raised threshold and the condition text carries a "(full match)" marker so
// the fallback is distinguishable downstream.
func (e *Engine) scoreActivity(b *breakdownBuilder, focusStats models.StatSnapshot) {
	p := e.params

	e.checkActivity(b, focusStats, models.StatShotsOnTarget,
		p.ShotsOnTargetSecondHalf, p.ShotsOnTargetFullMatch, p.ShotsOnTargetPoints, "shots on target")
	e.checkActivity(b, focusStats, models.StatDangerousAttack,
		p.DangerousAttacksSecondHalf, p.DangerousAttacksFullMatch, p.DangerousAttacksPoints, "dangerous attacks")
	e.checkActivity(b, focusStats, models.StatShotsBlocked,
		p.ShotsBlockedSecondHalf, p.ShotsBlockedFullMatch, p.ShotsBlockedPoints, "shots blocked")
	e.checkActivity(b, focusStats, models.StatBigChances,
		p.BigChancesSecondHalf, p.BigChancesFullMatch, p.BigChancesPoints, "big chances")
	e.checkActivity(b, focusStats, models.StatShotsInsideBox,
		p.ShotsInsideBoxSecondHalf, p.ShotsInsideBoxFullMatch, p.ShotsInsideBoxPoints, "shots inside box")
	e.checkActivity(b, focusStats, models.StatCrosses,
		p.CrossesSecondHalf, p.CrossesFullMatch, p.CrossesPoints, "crosses")
}

func (e *Engine) checkActivity(
	b *breakdownBuilder,
	snapshot models.StatSnapshot,
	kind models.StatKind,
	secondHalfMin, fullMatchMin int,
	points float64,
	label string,
) {
	if value, ok := snapshot.SecondHalfValue(kind); ok {
		if value >= secondHalfMin {
			b.add(points, "%d %s in 2nd half", value, label)
		}
		return
	}
	if value := snapshot.Whole(kind); value >= fullMatchMin {
		b.add(points, "%d %s (full match)", value, label)
	}
}

// scoreTactical evaluates the lower-weight tactical conditions on the best
// available scope: second half when present, whole match otherwise.
func (e *Engine) scoreTactical(b *breakdownBuilder, match *models.MatchSnapshot, focusStats models.StatSnapshot) {
	p := e.params

	if v := bestScope(focusStats, models.StatOffsides); v >= p.OffsidesMin {
		b.add(p.OffsidesPoints, "%d offsides", v)
	}
	if v := bestScope(focusStats, models.StatThrowIns); v >= p.ThrowInsMin {
		b.add(p.ThrowInsPoints, "%d throw-ins", v)
	}
	if v := bestScope(focusStats, models.StatFreeKicks); v >= p.FreeKicksMin {
		b.add(p.FreeKicksPoints, "%d free kicks", v)
	}
	// A zero here means the feed never reported the stat, not a 0% value.
	if v := bestScope(focusStats, models.StatPassAccuracy); v > 0 && v < p.PassAccuracyBelow {
		b.add(p.PassAccuracyPoints, "Pass accuracy %d%%", v)
	}
	if match.Minute >= p.SubstitutionMinute {
		if v := bestScope(focusStats, models.StatSubstitutions); v >= p.SubstitutionsMin {
			b.add(p.SubstitutionsPoints, "%d substitutions after %d'", v, p.SubstitutionMinute)
		}
	}
	if v := bestScope(focusStats, models.StatPossession); v >= p.PossessionMin {
		b.add(p.PossessionPoints, "Possession %d%%", v)
	}
	if reds := focusStats.Whole(models.StatRedCards); reds >= 1 {
		b.add(p.RedCardPenalty, "Red card shown")
	}
}

// scoreCornerBand maps the combined corner count to exactly one band.
func (e *Engine) scoreCornerBand(b *breakdownBuilder, home, away models.StatSnapshot) {
	p := e.params
	corners := home.Whole(models.StatCorners) + away.Whole(models.StatCorners)

	switch {
	case corners < p.CornerMidBandMin:
		b.add(p.CornerLowBandPenalty, "%d corners (red flag)", corners)
	case corners < p.CornerSweetSpotMin:
		b.add(p.CornerMidBandPoints, "%d corners (baseline)", corners)
	case corners <= p.CornerSweetSpotMax:
		b.add(p.CornerSweetSpotPoints, "%d corners (sweet spot)", corners)
	case corners <= p.CornerHighBandMax:
		b.add(p.CornerHighBandPoints, "%d corners (high action)", corners)
	default:
		b.add(p.CornerOversaturated, "%d corners (oversaturated)", corners)
	}
}

func (e *Engine) timeMultiplier(minute int) float64 {
	switch {
	case minute >= e.params.InjuryMinute:
		return e.params.TimeMultiplierMax
	case minute >= e.params.LateMinute:
		return e.params.TimeMultiplierLate
	default:
		return e.params.TimeMultiplierBase
	}
}

// favoriteDeficit returns how many goals the pre-match favorite is behind:
// positive when trailing, zero when drawing, negative when leading.
func favoriteDeficit(match *models.MatchSnapshot) int {
	switch match.Favorite {
	case models.SideHome:
		return match.AwayScore - match.HomeScore
	case models.SideAway:
		return match.HomeScore - match.AwayScore
	default:
		return -1
	}
}

// focusLead returns the focus team's goal lead, negative when behind.
func focusLead(match *models.MatchSnapshot, focus models.Side) int {
	if focus == models.SideAway {
		return match.AwayScore - match.HomeScore
	}
	return match.HomeScore - match.AwayScore
}

// bestScope returns the second-half value when available, the whole-match
// value otherwise.
func bestScope(snapshot models.StatSnapshot, kind models.StatKind) int {
	if v, ok := snapshot.SecondHalfValue(kind); ok {
		return v
	}
	return snapshot.Whole(kind)
}

// FocusTeam picks which side the matrix is evaluated for: the trailing team
// attacks, and in a draw the pre-match favorite carries the initiative, home
// side by default.
func FocusTeam(match *models.MatchSnapshot) models.Side {
	switch {
	case match.HomeScore > match.AwayScore:
		return models.SideAway
	case match.AwayScore > match.HomeScore:
		return models.SideHome
	case match.Favorite == models.SideAway:
		return models.SideAway
	default:
		return models.SideHome
	}
}
