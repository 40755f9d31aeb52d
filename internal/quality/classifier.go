package quality

import (
	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// Stat kinds weigh unequally: premium kinds are only supplied for well-covered
// competitions and say far more about feed completeness than the basics every
// league reports.
var kindWeights = map[models.StatKind]float64{
	// Premium kinds
	models.StatShotsInsideBox: 20,
	models.StatCrosses:        15,
	models.StatBigChances:     15,
	models.StatLongPasses:     15,
	models.StatPassAccuracy:   10,

	// Basic kinds
	models.StatCorners:         5,
	models.StatShotsTotal:      5,
	models.StatShotsOnTarget:   5,
	models.StatShotsOffTarget:  5,
	models.StatShotsBlocked:    5,
	models.StatDangerousAttack: 5,
	models.StatAttacks:         5,
	models.StatOffsides:        5,
	models.StatPossession:      5,
	models.StatFreeKicks:       5,
	models.StatThrowIns:        5,
	models.StatFouls:           5,
	models.StatYellowCards:     5,
	models.StatSaves:           5,
	models.StatSubstitutions:   5,
}

// Rating is the classifier output: a completeness score and the multiplier
// applied to the raw heuristic score.
type Rating struct {
	Score      float64 `json:"score"`
	Multiplier float64 `json:"multiplier"`
}

// Classify scores the completeness of a competition's statistical feed from
// the set of stat kinds observed with non-default values across both teams.
// The multiplier is 1 + score/200 with a floor of 1.0; it scales the raw
// heuristic score, so richer feeds get more trust. Pure function.
func Classify(present map[models.StatKind]bool) Rating {
	var score float64
	for kind, seen := range present {
		if !seen {
			continue
		}
		score += kindWeights[kind]
	}

	multiplier := 1 + score/200
	if multiplier < 1 {
		multiplier = 1
	}
	return Rating{Score: score, Multiplier: multiplier}
}

// PresentKinds merges the kinds carried with non-default values by both
// teams' snapshots into the availability set Classify consumes.
func PresentKinds(home, away models.StatSnapshot) map[models.StatKind]bool {
	present := make(map[models.StatKind]bool)
	for _, kind := range home.PresentKinds() {
		present[kind] = true
	}
	for _, kind := range away.PresentKinds() {
		present[kind] = true
	}
	return present
}
