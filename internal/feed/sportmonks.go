package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// Provider statistic type ids, as discovered against the v3 API.
var statTypeKinds = map[int]models.StatKind{
	34:    models.StatCorners,
	41:    models.StatShotsOffTarget,
	42:    models.StatShotsTotal,
	43:    models.StatAttacks,
	44:    models.StatDangerousAttack,
	45:    models.StatPossession,
	49:    models.StatShotsInsideBox,
	51:    models.StatOffsides,
	53:    models.StatYellowCards,
	55:    models.StatThrowIns,
	56:    models.StatFreeKicks,
	58:    models.StatShotsBlocked,
	59:    models.StatSubstitutions,
	60:    models.StatCrosses,
	62:    models.StatFouls,
	83:    models.StatRedCards,
	84:    models.StatBigChances,
	86:    models.StatSaves,
	580:   models.StatShotsOnTarget,
	1605:  models.StatPassAccuracy,
	27264: models.StatLongPasses,
}

// Live in-play states. HT counts as live so half-time matches stay tracked.
var liveStates = map[string]bool{
	"INPLAY_1ST_HALF": true,
	"INPLAY_2ND_HALF": true,
	"INPLAY_ET":       true,
	"HT":              true,
}

// SportmonksClient implements Provider against the SportMonks football API.
type SportmonksClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// SportmonksConfig holds feed client configuration.
type SportmonksConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewSportmonksClient creates a feed client.
func NewSportmonksClient(config SportmonksConfig, logger zerolog.Logger) *SportmonksClient {
	return &SportmonksClient{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		client:  &http.Client{Timeout: config.Timeout},
		logger:  logger.With().Str("component", "sportmonks_client").Logger(),
	}
}

type apiFixture struct {
	ID     int64 `json:"id"`
	League struct {
		Name string `json:"name"`
	} `json:"league"`
	Participants []struct {
		Name     string `json:"name"`
		Location string `json:"location"` // "home" | "away"
	} `json:"participants"`
	Scores []struct {
		Location string `json:"location"`
		Goals    int    `json:"goals"`
	} `json:"scores"`
	State struct {
		DeveloperName string `json:"developer_name"`
	} `json:"state"`
	Periods []struct {
		Description string `json:"description"`
		Minutes     int    `json:"minutes"`
		Ticking     bool   `json:"ticking"`
		Statistics  []apiStatistic `json:"statistics"`
	} `json:"periods"`
	Statistics []apiStatistic `json:"statistics"`
	Odds       []apiOdd       `json:"odds"`
}

type apiStatistic struct {
	TypeID   int    `json:"type_id"`
	Location string `json:"location"`
	Data     struct {
		Value float64 `json:"value"`
	} `json:"data"`
}

type apiOdd struct {
	MarketDescription string `json:"market_description"`
	Bookmaker         string `json:"bookmaker_name"`
	Label             string `json:"label"` // "Over" | "Under" | "Home" | "Away" | "Draw"
	Total             string `json:"total"` // line, e.g. "10.5"
	Value             string `json:"value"` // decimal odds
	Suspended         bool   `json:"suspended"`
}

type apiEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// LiveMatches implements Provider.
func (c *SportmonksClient) LiveMatches(ctx context.Context) ([]models.MatchSnapshot, error) {
	var fixtures []apiFixture
	if err := c.get(ctx, "/livescores/inplay", url.Values{
		"include": {"scores;participants;state;periods;league"},
	}, &fixtures); err != nil {
		return nil, fmt.Errorf("fetch live matches: %w", err)
	}

	snapshots := make([]models.MatchSnapshot, 0, len(fixtures))
	for i := range fixtures {
		snapshots = append(snapshots, c.toSnapshot(&fixtures[i]))
	}
	return snapshots, nil
}

// MatchPayload implements Provider.
func (c *SportmonksClient) MatchPayload(ctx context.Context, fixtureID int64) (*models.MatchPayload, error) {
	var fixture apiFixture
	if err := c.get(ctx, fmt.Sprintf("/fixtures/%d", fixtureID), url.Values{
		"include": {"statistics;periods.statistics;scores;participants;state;odds;league"},
	}, &fixture); err != nil {
		return nil, fmt.Errorf("fetch fixture %d: %w", fixtureID, err)
	}

	payload := &models.MatchPayload{
		Snapshot:   c.toSnapshot(&fixture),
		Statistics: toTeamStats(fixture.Statistics),
		CornerOdds: toCornerQuotes(fixture.Odds),
	}
	for _, period := range fixture.Periods {
		if len(period.Statistics) == 0 {
			continue
		}
		payload.Periods = append(payload.Periods, models.PeriodStats{
			Description: period.Description,
			Stats:       toTeamStats(period.Statistics),
		})
	}
	return payload, nil
}

// FinalCorners implements Provider.
func (c *SportmonksClient) FinalCorners(ctx context.Context, fixtureID int64) (int, bool, error) {
	var fixture apiFixture
	if err := c.get(ctx, fmt.Sprintf("/fixtures/%d", fixtureID), url.Values{
		"include": {"statistics;state"},
	}, &fixture); err != nil {
		return 0, false, fmt.Errorf("fetch final stats for fixture %d: %w", fixtureID, err)
	}

	if fixture.State.DeveloperName != "FT" && fixture.State.DeveloperName != "AET" {
		return 0, false, nil
	}

	corners := 0
	for _, stat := range fixture.Statistics {
		if statTypeKinds[stat.TypeID] == models.StatCorners {
			corners += int(stat.Data.Value)
		}
	}
	return corners, true, nil
}

func (c *SportmonksClient) toSnapshot(fixture *apiFixture) models.MatchSnapshot {
	snapshot := models.MatchSnapshot{
		FixtureID: fixture.ID,
		League:    fixture.League.Name,
		Status:    toStatus(fixture.State.DeveloperName),
		Favorite:  toFavorite(fixture.Odds),
	}

	for _, p := range fixture.Participants {
		switch p.Location {
		case "home":
			snapshot.HomeTeam = p.Name
		case "away":
			snapshot.AwayTeam = p.Name
		}
	}
	for _, s := range fixture.Scores {
		switch s.Location {
		case "home":
			snapshot.HomeScore = s.Goals
		case "away":
			snapshot.AwayScore = s.Goals
		}
	}

	// The ticking period already carries the cumulative match minute; no
	// +45 adjustment for the second half.
	for _, period := range fixture.Periods {
		if period.Ticking {
			snapshot.Minute = period.Minutes
			break
		}
	}
	return snapshot
}

func toStatus(state string) models.MatchStatus {
	switch {
	case liveStates[state]:
		return models.StatusLive
	case state == "FT" || state == "AET" || state == "FT_PEN":
		return models.StatusFinished
	default:
		return models.StatusNotStarted
	}
}

// toFavorite derives the pre-match favorite from fulltime-result odds: the
// cheaper of the home/away prices. SideNone when the market is missing.
func toFavorite(odds []apiOdd) models.Side {
	var home, away decimal.Decimal
	for _, odd := range odds {
		if !strings.Contains(strings.ToLower(odd.MarketDescription), "fulltime result") {
			continue
		}
		value, err := decimal.NewFromString(odd.Value)
		if err != nil {
			continue
		}
		switch strings.ToLower(odd.Label) {
		case "home":
			home = value
		case "away":
			away = value
		}
	}
	switch {
	case home.IsZero() || away.IsZero():
		return models.SideNone
	case home.LessThan(away):
		return models.SideHome
	case away.LessThan(home):
		return models.SideAway
	default:
		return models.SideNone
	}
}

func toTeamStats(stats []apiStatistic) []models.TeamStat {
	out := make([]models.TeamStat, 0, len(stats))
	for _, stat := range stats {
		kind, ok := statTypeKinds[stat.TypeID]
		if !ok {
			continue
		}
		side := models.SideHome
		if stat.Location == "away" {
			side = models.SideAway
		}
		out = append(out, models.TeamStat{Kind: kind, Side: side, Value: int(stat.Data.Value)})
	}
	return out
}

func toCornerQuotes(odds []apiOdd) []models.CornerQuote {
	byLine := make(map[string]*models.CornerQuote)
	var order []string

	for _, odd := range odds {
		market := strings.ToLower(odd.MarketDescription)
		if !strings.Contains(market, "corner") {
			continue
		}
		line, err := decimal.NewFromString(odd.Total)
		if err != nil {
			continue
		}
		value, err := decimal.NewFromString(odd.Value)
		if err != nil {
			continue
		}

		key := odd.Bookmaker + "|" + line.String()
		quote, ok := byLine[key]
		if !ok {
			quote = &models.CornerQuote{Bookmaker: odd.Bookmaker, Line: line}
			byLine[key] = quote
			order = append(order, key)
		}
		switch strings.ToLower(odd.Label) {
		case "over":
			quote.OverOdds = value
		case "under":
			quote.UnderOdds = value
		}
		if odd.Suspended {
			quote.Suspended = true
		}
	}

	quotes := make([]models.CornerQuote, 0, len(order))
	for _, key := range order {
		quotes = append(quotes, *byLine[key])
	}
	return quotes
}

func (c *SportmonksClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	query.Set("api_token", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
