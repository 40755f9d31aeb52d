package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// SelectQuote picks the corner line to recommend: the first active quote
// whose line sits strictly above the current corner count, so the bet can
// still win outright (a whole-number line equal to the count is at best a
// push). Falls back to the first active quote, nil when nothing is biddable.
func SelectQuote(quotes []models.CornerQuote, currentCorners int) *models.CornerQuote {
	corners := decimal.NewFromInt(int64(currentCorners))
	var fallback *models.CornerQuote
	for i := range quotes {
		quote := &quotes[i]
		if quote.Suspended || quote.OverOdds.IsZero() {
			continue
		}
		if quote.Line.GreaterThan(corners) {
			return quote
		}
		if fallback == nil {
			fallback = quote
		}
	}
	return fallback
}

// FormatAlert renders the one-shot alert message. Pure function; the layout
// mirrors what the engine knows: context, fired conditions and the
// recommended market.
func FormatAlert(
	match *models.MatchSnapshot,
	breakdown *models.ScoreBreakdown,
	totalCorners int,
	quote *models.CornerQuote,
) string {
	var b strings.Builder

	b.WriteString("🚨 LATE CORNER ALERT 🚨\n\n")
	fmt.Fprintf(&b, "<b>%s</b>\n", match.Teams())
	fmt.Fprintf(&b, "📊 Score: %s | ⏱️ %d'\n", match.Scoreline(), match.Minute)
	fmt.Fprintf(&b, "⚽ Corners: %d\n\n", totalCorners)

	fmt.Fprintf(&b, "🎯 Score: <b>%.1f</b> (raw %.1f × time %.1f × quality %.2f)\n",
		breakdown.FinalScore, breakdown.RawScore, breakdown.TimeMultiplier, breakdown.QualityMultiplier)

	if len(breakdown.Conditions) > 0 {
		b.WriteString("\n📋 Conditions:\n")
		for _, condition := range breakdown.Conditions {
			fmt.Fprintf(&b, "• %s (%+.0f)\n", condition.Description, condition.Points)
		}
	}

	b.WriteString("\n💰 Market: Asian Over corners\n")
	if quote != nil {
		fmt.Fprintf(&b, "📈 Over %s @ %s (%s)\n", quote.Line.String(), quote.OverOdds.String(), quote.Bookmaker)
	} else {
		b.WriteString("📈 Check your bookmaker for live lines\n")
	}

	return b.String()
}
