package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// setupTestSportmonks creates a client against a stub API server
func setupTestSportmonks(t *testing.T, handler http.HandlerFunc) *SportmonksClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewSportmonksClient(SportmonksConfig{
		BaseURL: server.URL,
		APIKey:  "test-token",
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
}

const liveMatchesBody = `{
	"data": [
		{
			"id": 1001,
			"league": {"name": "Premier League"},
			"participants": [
				{"name": "Team A", "location": "home"},
				{"name": "Team B", "location": "away"}
			],
			"scores": [
				{"location": "home", "goals": 1},
				{"location": "away", "goals": 0}
			],
			"state": {"developer_name": "INPLAY_2ND_HALF"},
			"periods": [
				{"description": "1st-half", "minutes": 45, "ticking": false},
				{"description": "2nd-half", "minutes": 84, "ticking": true}
			]
		},
		{
			"id": 1002,
			"participants": [
				{"name": "Team C", "location": "home"},
				{"name": "Team D", "location": "away"}
			],
			"state": {"developer_name": "FT"},
			"periods": []
		}
	]
}`

// TestLiveMatches tests snapshot conversion from the inplay endpoint
func TestLiveMatches(t *testing.T) {
	client := setupTestSportmonks(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/livescores/inplay", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("api_token"))
		assert.NotEmpty(t, r.URL.Query().Get("include"))
		w.Write([]byte(liveMatchesBody))
	})

	snapshots, err := client.LiveMatches(context.Background())

	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	first := snapshots[0]
	assert.Equal(t, int64(1001), first.FixtureID)
	assert.Equal(t, "Team A", first.HomeTeam)
	assert.Equal(t, "Team B", first.AwayTeam)
	assert.Equal(t, "Premier League", first.League)
	assert.Equal(t, 1, first.HomeScore)
	assert.Equal(t, 0, first.AwayScore)
	assert.Equal(t, models.StatusLive, first.Status)

	// Minute comes from the ticking period, already cumulative
	assert.Equal(t, 84, first.Minute)

	assert.Equal(t, models.StatusFinished, snapshots[1].Status)
}

const fixtureBody = `{
	"data": {
		"id": 1001,
		"league": {"name": "Premier League"},
		"participants": [
			{"name": "Team A", "location": "home"},
			{"name": "Team B", "location": "away"}
		],
		"scores": [
			{"location": "home", "goals": 1},
			{"location": "away", "goals": 0}
		],
		"state": {"developer_name": "INPLAY_2ND_HALF"},
		"periods": [
			{
				"description": "2nd-half",
				"minutes": 84,
				"ticking": true,
				"statistics": [
					{"type_id": 580, "location": "away", "data": {"value": 6}}
				]
			}
		],
		"statistics": [
			{"type_id": 34, "location": "home", "data": {"value": 4}},
			{"type_id": 34, "location": "away", "data": {"value": 5}},
			{"type_id": 580, "location": "away", "data": {"value": 9}},
			{"type_id": 99999, "location": "home", "data": {"value": 3}}
		],
		"odds": [
			{"market_description": "Corners Over/Under", "bookmaker_name": "bet365", "label": "Over", "total": "10.5", "value": "2.05"},
			{"market_description": "Corners Over/Under", "bookmaker_name": "bet365", "label": "Under", "total": "10.5", "value": "1.75"},
			{"market_description": "Fulltime Result", "bookmaker_name": "bet365", "label": "Home", "total": "", "value": "3.50"},
			{"market_description": "Fulltime Result", "bookmaker_name": "bet365", "label": "Away", "total": "", "value": "1.95"}
		]
	}
}`

// TestMatchPayload tests full payload conversion
func TestMatchPayload(t *testing.T) {
	client := setupTestSportmonks(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures/1001", r.URL.Path)
		w.Write([]byte(fixtureBody))
	})

	payload, err := client.MatchPayload(context.Background(), 1001)

	require.NoError(t, err)
	assert.Equal(t, int64(1001), payload.Snapshot.FixtureID)
	assert.Equal(t, 84, payload.Snapshot.Minute)

	// Away is the cheaper fulltime-result price, so the favorite
	assert.Equal(t, models.SideAway, payload.Snapshot.Favorite)

	// Unknown type ids are dropped
	require.Len(t, payload.Statistics, 3)
	assert.Contains(t, payload.Statistics, models.TeamStat{Kind: models.StatCorners, Side: models.SideHome, Value: 4})
	assert.Contains(t, payload.Statistics, models.TeamStat{Kind: models.StatShotsOnTarget, Side: models.SideAway, Value: 9})

	require.Len(t, payload.Periods, 1)
	assert.Equal(t, "2nd-half", payload.Periods[0].Description)
	assert.Contains(t, payload.Periods[0].Stats, models.TeamStat{Kind: models.StatShotsOnTarget, Side: models.SideAway, Value: 6})

	// Over and Under for the same line are folded into a single quote
	require.Len(t, payload.CornerOdds, 1)
	quote := payload.CornerOdds[0]
	assert.Equal(t, "bet365", quote.Bookmaker)
	assert.Equal(t, "10.5", quote.Line.String())
	assert.Equal(t, "2.05", quote.OverOdds.String())
	assert.Equal(t, "1.75", quote.UnderOdds.String())
	assert.False(t, quote.Suspended)
}

// TestFinalCorners tests final corner extraction per match state
func TestFinalCorners(t *testing.T) {
	const finishedBody = `{
		"data": {
			"id": 1001,
			"state": {"developer_name": "FT"},
			"statistics": [
				{"type_id": 34, "location": "home", "data": {"value": 7}},
				{"type_id": 34, "location": "away", "data": {"value": 5}},
				{"type_id": 42, "location": "home", "data": {"value": 14}}
			]
		}
	}`

	client := setupTestSportmonks(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(finishedBody))
	})

	corners, finished, err := client.FinalCorners(context.Background(), 1001)

	require.NoError(t, err)
	assert.True(t, finished)
	assert.Equal(t, 12, corners)
}

// TestFinalCorners_StillLive tests that an in-play match is not resolved
func TestFinalCorners_StillLive(t *testing.T) {
	client := setupTestSportmonks(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"id": 1001, "state": {"developer_name": "INPLAY_2ND_HALF"}}}`))
	})

	_, finished, err := client.FinalCorners(context.Background(), 1001)

	require.NoError(t, err)
	assert.False(t, finished)
}

// TestGet_HTTPError tests non-200 handling
func TestGet_HTTPError(t *testing.T) {
	client := setupTestSportmonks(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.LiveMatches(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}
