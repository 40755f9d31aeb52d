package scoring

// Params holds every weight and threshold of the scoring matrix. All values
// are named here so the engine itself carries no inline literals and the same
// engine can be exercised against synthetic snapshots by tuning Params alone.
type Params struct {
	// Context conditions. ContextMinute gates the favorite-pressure
	// conditions; at most one of the trailing/drawing conditions fires.
	ContextMinute          int
	FavoriteTrailingByOne  float64
	FavoriteTrailingByMore float64
	FavoriteDrawing        float64
	LeadingByThreePenalty  float64

	// Recent-activity conditions. Each has a second-half threshold and a
	// raised full-match fallback threshold used when no period breakdown is
	// available.
	ShotsOnTargetPoints        float64
	ShotsOnTargetSecondHalf    int
	ShotsOnTargetFullMatch     int
	DangerousAttacksPoints     float64
	DangerousAttacksSecondHalf int
	DangerousAttacksFullMatch  int
	ShotsBlockedPoints         float64
	ShotsBlockedSecondHalf     int
	ShotsBlockedFullMatch      int
	BigChancesPoints           float64
	BigChancesSecondHalf       int
	BigChancesFullMatch        int
	ShotsInsideBoxPoints       float64
	ShotsInsideBoxSecondHalf   int
	ShotsInsideBoxFullMatch    int
	CrossesPoints              float64
	CrossesSecondHalf          int
	CrossesFullMatch           int

	// Tactical conditions, second-half values when present else whole-match.
	OffsidesMin          int
	OffsidesPoints       float64
	ThrowInsMin          int
	ThrowInsPoints       float64
	FreeKicksMin         int
	FreeKicksPoints      float64
	PassAccuracyBelow    int
	PassAccuracyPoints   float64
	SubstitutionMinute   int
	SubstitutionsMin     int
	SubstitutionsPoints  float64
	PossessionMin        int
	PossessionPoints     float64
	RedCardPenalty       float64

	// Corner-count bands. Exactly one band applies:
	// [0, MidBandMin) red flag, [MidBandMin, SweetSpotMin) positive,
	// [SweetSpotMin, SweetSpotMax] sweet spot, (SweetSpotMax, HighBandMax]
	// high action, above HighBandMax oversaturated.
	CornerSweetSpotMin    int
	CornerSweetSpotMax    int
	CornerSweetSpotPoints float64
	CornerMidBandMin      int
	CornerMidBandPoints   float64
	CornerLowBandPenalty  float64
	CornerHighBandMax     int
	CornerHighBandPoints  float64
	CornerOversaturated   float64

	// Time multiplier, applied once to the raw sum and multiplicative with
	// the league quality multiplier.
	LateMinute         int
	InjuryMinute       int
	TimeMultiplierBase float64
	TimeMultiplierLate float64
	TimeMultiplierMax  float64
}

// DefaultParams returns the documented scoring matrix.
func DefaultParams() Params {
	return Params{
		ContextMinute:          80,
		FavoriteTrailingByOne:  6,
		FavoriteTrailingByMore: 3,
		FavoriteDrawing:        4,
		LeadingByThreePenalty:  -5,

		ShotsOnTargetPoints:        4,
		ShotsOnTargetSecondHalf:    5,
		ShotsOnTargetFullMatch:     8,
		DangerousAttacksPoints:     4,
		DangerousAttacksSecondHalf: 30,
		DangerousAttacksFullMatch:  55,
		ShotsBlockedPoints:         4,
		ShotsBlockedSecondHalf:     4,
		ShotsBlockedFullMatch:      7,
		BigChancesPoints:           4,
		BigChancesSecondHalf:       3,
		BigChancesFullMatch:        5,
		ShotsInsideBoxPoints:       3,
		ShotsInsideBoxSecondHalf:   5,
		ShotsInsideBoxFullMatch:    9,
		CrossesPoints:              2,
		CrossesSecondHalf:          10,
		CrossesFullMatch:           18,

		OffsidesMin:         3,
		OffsidesPoints:      1,
		ThrowInsMin:         8,
		ThrowInsPoints:      1,
		FreeKicksMin:        12,
		FreeKicksPoints:     1,
		PassAccuracyBelow:   75,
		PassAccuracyPoints:  1,
		SubstitutionMinute:  70,
		SubstitutionsMin:    2,
		SubstitutionsPoints: 2,
		PossessionMin:       65,
		PossessionPoints:    2,
		RedCardPenalty:      -3,

		CornerSweetSpotMin:    8,
		CornerSweetSpotMax:    11,
		CornerSweetSpotPoints: 3,
		CornerMidBandMin:      6,
		CornerMidBandPoints:   1,
		CornerLowBandPenalty:  -2,
		CornerHighBandMax:     14,
		CornerHighBandPoints:  1,
		CornerOversaturated:   -1,

		LateMinute:         80,
		InjuryMinute:       90,
		TimeMultiplierBase: 1.0,
		TimeMultiplierLate: 1.5,
		TimeMultiplierMax:  2.0,
	}
}
