package feed

import (
	"context"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// Provider is the inbound data-feed boundary. The core only ever operates on
// the already-parsed snapshots and payloads it returns; transport concerns
// (HTTP, rate limits, provider quirks) stay behind this interface.
type Provider interface {
	// LiveMatches returns a snapshot of every match currently in play.
	LiveMatches(ctx context.Context) ([]models.MatchSnapshot, error)

	// MatchPayload returns the full per-fixture view for one polling cycle:
	// snapshot, whole-match statistics, period breakdowns when the provider
	// supplies them, and the quoted corner lines.
	MatchPayload(ctx context.Context, fixtureID int64) (*models.MatchPayload, error)

	// FinalCorners returns the final combined corner count for a fixture.
	// finished is false while the match is still in play.
	FinalCorners(ctx context.Context, fixtureID int64) (corners int, finished bool, err error)
}
