package models

// StatKind names one match statistic tracked by the engine.
type StatKind string

const (
	StatCorners         StatKind = "corners"
	StatShotsTotal      StatKind = "shots_total"
	StatShotsOnTarget   StatKind = "shots_on_target"
	StatShotsOffTarget  StatKind = "shots_off_target"
	StatShotsBlocked    StatKind = "shots_blocked"
	StatShotsInsideBox  StatKind = "shots_inside_box"
	StatBigChances      StatKind = "big_chances"
	StatDangerousAttack StatKind = "dangerous_attacks"
	StatAttacks         StatKind = "attacks"
	StatCrosses         StatKind = "crosses"
	StatOffsides        StatKind = "offsides"
	StatPossession      StatKind = "possession_pct"
	StatFreeKicks       StatKind = "free_kicks"
	StatThrowIns        StatKind = "throw_ins"
	StatFouls           StatKind = "fouls"
	StatYellowCards     StatKind = "yellow_cards"
	StatRedCards        StatKind = "red_cards"
	StatSubstitutions   StatKind = "substitutions"
	StatPassAccuracy    StatKind = "pass_accuracy_pct"
	StatLongPasses      StatKind = "long_passes"
	StatSaves           StatKind = "saves"
)

// IsPercentage reports whether the kind is a percentage rather than an
// additive count. Percentage kinds are never derived by period subtraction.
func (k StatKind) IsPercentage() bool {
	return k == StatPossession || k == StatPassAccuracy
}

// StatLine maps stat kinds to their numeric values for one team.
type StatLine map[StatKind]int

// StatSnapshot holds one team's statistics: whole-match totals plus an
// optional second-half subset. A nil SecondHalf means the feed supplied no
// period breakdown at all; a kind absent from a non-nil SecondHalf means that
// kind is unavailable for the second half. Neither is conflated with zero.
type StatSnapshot struct {
	WholeMatch StatLine `json:"whole_match"`
	SecondHalf StatLine `json:"second_half,omitempty"`
}

// Whole returns the whole-match value for kind, zero when absent.
func (s StatSnapshot) Whole(kind StatKind) int {
	return s.WholeMatch[kind]
}

// SecondHalfValue returns the second-half value for kind and whether it is
// available.
func (s StatSnapshot) SecondHalfValue(kind StatKind) (int, bool) {
	if s.SecondHalf == nil {
		return 0, false
	}
	v, ok := s.SecondHalf[kind]
	return v, ok
}

// HasSecondHalf reports whether any second-half data is available.
func (s StatSnapshot) HasSecondHalf() bool {
	return s.SecondHalf != nil
}

// PresentKinds returns the kinds carried with a non-zero whole-match value.
func (s StatSnapshot) PresentKinds() []StatKind {
	kinds := make([]StatKind, 0, len(s.WholeMatch))
	for kind, v := range s.WholeMatch {
		if v != 0 {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
