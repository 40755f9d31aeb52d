package outcome

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// Resolve reconciles a sent alert against the match's final corner count and
// returns the updated record to persist. Pure transform, idempotent: records
// already carrying a terminal result are returned unchanged, so a resolution
// pass can safely be retried at any later time.
//
// Asian over semantics: a half-integer line (e.g. 10.5) wins above the line
// and loses at or below it; a whole-number line additionally pushes, i.e.
// refunds the stake, when the final count lands exactly on the line.
func Resolve(record models.AlertRecord, finalCorners int, now time.Time) models.AlertRecord {
	if record.Result.Terminal() {
		return record
	}

	record.FinalCorners = finalCorners
	record.Result = Classify(record.OverLine, finalCorners)
	record.CheckedAt = now
	record.MatchFinished = true
	return record
}

// Classify maps a final corner count against an Asian over line.
func Classify(line decimal.Decimal, finalCorners int) models.AlertResult {
	corners := decimal.NewFromInt(int64(finalCorners))

	if corners.GreaterThan(line) {
		return models.ResultWin
	}
	if line.IsInteger() && corners.Equal(line) {
		return models.ResultRefund
	}
	return models.ResultLoss
}
