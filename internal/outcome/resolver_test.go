package outcome

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// TestClassify tests the Asian over outcome table
func TestClassify(t *testing.T) {
	tests := []struct {
		line         string
		finalCorners int
		want         models.AlertResult
	}{
		// Half-integer lines never push
		{"1.5", 1, models.ResultLoss},
		{"1.5", 2, models.ResultWin},
		{"10.5", 10, models.ResultLoss},
		{"10.5", 11, models.ResultWin},

		// Whole-number lines push on the exact count
		{"1", 0, models.ResultLoss},
		{"1", 1, models.ResultRefund},
		{"1", 2, models.ResultWin},
		{"11", 11, models.ResultRefund},
		{"11", 12, models.ResultWin},
	}

	for _, tt := range tests {
		line := decimal.RequireFromString(tt.line)
		got := Classify(line, tt.finalCorners)
		assert.Equal(t, tt.want, got, "line=%s corners=%d", tt.line, tt.finalCorners)
	}
}

// TestResolve_SetsTerminalState tests the full record transform
func TestResolve_SetsTerminalState(t *testing.T) {
	now := time.Date(2025, 3, 8, 23, 0, 0, 0, time.UTC)
	record := models.AlertRecord{
		ID:        uuid.New(),
		FixtureID: 1001,
		OverLine:  decimal.RequireFromString("10.5"),
		Result:    models.ResultPending,
	}

	resolved := Resolve(record, 12, now)

	assert.Equal(t, models.ResultWin, resolved.Result)
	assert.Equal(t, 12, resolved.FinalCorners)
	assert.Equal(t, now, resolved.CheckedAt)
	assert.True(t, resolved.MatchFinished)
}

// TestResolve_Idempotent tests that terminal records are never reclassified
func TestResolve_Idempotent(t *testing.T) {
	now := time.Date(2025, 3, 8, 23, 0, 0, 0, time.UTC)
	record := models.AlertRecord{
		ID:           uuid.New(),
		OverLine:     decimal.RequireFromString("10.5"),
		Result:       models.ResultWin,
		FinalCorners: 12,
		CheckedAt:    now,
	}

	// A later pass with different (even contradictory) data changes nothing
	resolved := Resolve(record, 5, now.Add(time.Hour))

	assert.Equal(t, models.ResultWin, resolved.Result)
	assert.Equal(t, 12, resolved.FinalCorners)
	assert.Equal(t, now, resolved.CheckedAt)
}

// TestResolve_RefundPath tests the push on a whole-number line
func TestResolve_RefundPath(t *testing.T) {
	record := models.AlertRecord{
		ID:       uuid.New(),
		OverLine: decimal.RequireFromString("11"),
		Result:   models.ResultPending,
	}

	resolved := Resolve(record, 11, time.Now())

	assert.Equal(t, models.ResultRefund, resolved.Result)
	assert.True(t, resolved.Result.Terminal())
}
