package stats

import (
	"strings"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// Extract normalizes a raw match payload into per-team stat snapshots. It is
// a pure function and never fails: absent kinds default to zero in the
// whole-match line and to "unavailable" in the second-half line.
//
// Second-half resolution order:
//  1. a period whose description identifies it as the second half supplies
//     the second-half line directly;
//  2. otherwise, with a first-half period and the match past minute 45, the
//     second half is derived as whole-match minus first-half, clipped at 0
//     (percentage kinds are not derivable and stay unavailable);
//  3. otherwise the second half is unavailable.
func Extract(payload *models.MatchPayload) (home, away models.StatSnapshot) {
	home.WholeMatch = sideLine(payload.Statistics, models.SideHome)
	away.WholeMatch = sideLine(payload.Statistics, models.SideAway)

	if period := findPeriod(payload.Periods, isSecondHalf); period != nil {
		home.SecondHalf = sideLine(period.Stats, models.SideHome)
		away.SecondHalf = sideLine(period.Stats, models.SideAway)
	} else if period := findPeriod(payload.Periods, isFirstHalf); period != nil && payload.Snapshot.Minute > 45 {
		home.SecondHalf = subtractLine(home.WholeMatch, sideLine(period.Stats, models.SideHome))
		away.SecondHalf = subtractLine(away.WholeMatch, sideLine(period.Stats, models.SideAway))
	}

	clampToWhole(home)
	clampToWhole(away)
	return home, away
}

func sideLine(teamStats []models.TeamStat, side models.Side) models.StatLine {
	line := make(models.StatLine)
	for _, stat := range teamStats {
		if stat.Side != side {
			continue
		}
		value := stat.Value
		if value < 0 {
			value = 0
		}
		line[stat.Kind] = value
	}
	return line
}

// subtractLine derives second-half values as whole minus first half, clipped
// at 0. Only kinds the first-half period actually reported are derivable;
// percentage kinds are not additive and are left unavailable.
func subtractLine(whole, firstHalf models.StatLine) models.StatLine {
	second := make(models.StatLine)
	for kind, firstValue := range firstHalf {
		if kind.IsPercentage() {
			continue
		}
		value := whole[kind] - firstValue
		if value < 0 {
			value = 0
		}
		second[kind] = value
	}
	return second
}

// clampToWhole enforces that no second-half value exceeds the whole-match
// value for the same kind when both are present.
func clampToWhole(snapshot models.StatSnapshot) {
	if snapshot.SecondHalf == nil {
		return
	}
	for kind, value := range snapshot.SecondHalf {
		if whole, ok := snapshot.WholeMatch[kind]; ok && value > whole {
			snapshot.SecondHalf[kind] = whole
		}
	}
}

func findPeriod(periods []models.PeriodStats, match func(string) bool) *models.PeriodStats {
	for i := range periods {
		if match(periods[i].Description) {
			return &periods[i]
		}
	}
	return nil
}

func isSecondHalf(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "2nd") || strings.Contains(d, "second")
}

func isFirstHalf(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "1st") || strings.Contains(d, "first")
}
