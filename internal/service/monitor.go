package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/corner-alert-service/internal/feed"
	"github.com/cypherlabdev/corner-alert-service/internal/metrics"
	"github.com/cypherlabdev/corner-alert-service/internal/models"
	"github.com/cypherlabdev/corner-alert-service/internal/notify"
	"github.com/cypherlabdev/corner-alert-service/internal/outcome"
	"github.com/cypherlabdev/corner-alert-service/internal/quality"
	"github.com/cypherlabdev/corner-alert-service/internal/stats"
	"github.com/cypherlabdev/corner-alert-service/internal/tracker"
	"github.com/cypherlabdev/corner-alert-service/pkg/scoring"
)

// Fallback line used when no corner quote is live at alert time: the next
// half-integer line above the current count, priced at evens.
var fallbackOdds = decimal.NewFromInt(2)

// Retry passes spent on a failed record insert before the record is dropped.
// Bounds records the store rejects permanently, e.g. a second pending alert
// for a re-entered fixture hitting the pending-uniqueness index.
const maxPersistAttempts = 5

// MonitorSettings holds the polling-loop knobs.
type MonitorSettings struct {
	DiscoveryInterval   time.Duration
	PollInterval        time.Duration
	ResultCheckSchedule string
	Gate                tracker.GateConfig
}

// Monitor drives the single cooperative polling loop: coarse discovery of new
// live matches, tight scoring/timing-gate cycles for tracked ones, and the
// scheduled outcome-resolution pass. All tracker mutation funnels through it
// on one logical timeline.
type Monitor struct {
	settings MonitorSettings
	provider feed.Provider
	engine   *scoring.Engine
	tracker  *tracker.Tracker
	notifier Notifier
	store    AlertStore
	logger   zerolog.Logger

	// mu serializes payload processing between the poll loop and any
	// push-mode inbound, so per-fixture observations stay in arrival order.
	mu sync.Mutex

	// Alerts whose record insert failed; the notification already went out,
	// so these are retried on later cycles rather than dropped outright.
	unsavedAlerts []unsavedAlert
}

// unsavedAlert is a fired alert whose record insert failed, with the number
// of retry passes already spent on it.
type unsavedAlert struct {
	record   *models.AlertRecord
	attempts int
}

// NewMonitor creates the polling-loop service.
func NewMonitor(
	settings MonitorSettings,
	provider feed.Provider,
	engine *scoring.Engine,
	matchTracker *tracker.Tracker,
	notifier Notifier,
	store AlertStore,
	logger zerolog.Logger,
) *Monitor {
	return &Monitor{
		settings: settings,
		provider: provider,
		engine:   engine,
		tracker:  matchTracker,
		notifier: notifier,
		store:    store,
		logger:   logger.With().Str("component", "monitor").Logger(),
	}
}

// Tracker exposes the tracked-match table for read-only projections.
func (m *Monitor) Tracker() *tracker.Tracker {
	return m.tracker
}

// Run drives the loop until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	scheduler, err := m.startScheduler(ctx)
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	discoveryTicker := time.NewTicker(m.settings.DiscoveryInterval)
	defer discoveryTicker.Stop()
	pollTicker := time.NewTicker(m.settings.PollInterval)
	defer pollTicker.Stop()

	m.logger.Info().
		Dur("discovery_interval", m.settings.DiscoveryInterval).
		Dur("poll_interval", m.settings.PollInterval).
		Str("result_check_schedule", m.settings.ResultCheckSchedule).
		Msg("monitor started")

	m.Discover(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("monitor stopping")
			return nil
		case <-discoveryTicker.C:
			m.Discover(ctx)
		case <-pollTicker.C:
			m.Poll(ctx)
		}
	}
}

// RunMaintenance drives the housekeeping a push-mode deployment still needs
// when nothing polls the feed: the scheduled outcome-resolution pass,
// grace-based eviction of fixtures whose telemetry stopped arriving, and the
// persistence retry drain. Runs until the context is cancelled.
func (m *Monitor) RunMaintenance(ctx context.Context) error {
	scheduler, err := m.startScheduler(ctx)
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	ticker := time.NewTicker(m.settings.PollInterval)
	defer ticker.Stop()

	m.logger.Info().
		Dur("housekeeping_interval", m.settings.PollInterval).
		Str("result_check_schedule", m.settings.ResultCheckSchedule).
		Msg("monitor maintenance started")

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("monitor maintenance stopping")
			return nil
		case <-ticker.C:
			m.Housekeep(ctx)
		}
	}
}

// Housekeep runs one maintenance pass outside the polling loop: evict
// matches that finished or stopped arriving, then drain the persistence
// retry queue. There is no live set to compare against, so eviction relies
// on the grace period alone.
func (m *Monitor) Housekeep(ctx context.Context) {
	evicted := m.tracker.EvictStale(nil)
	if len(evicted) > 0 {
		m.logger.Info().Ints64("fixture_ids", evicted).Msg("evicted stale matches")
	}
	metrics.TrackedMatches.Set(float64(m.tracker.Len()))
	m.retryUnsavedAlerts(ctx)
}

func (m *Monitor) startScheduler(ctx context.Context) (*cron.Cron, error) {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(m.settings.ResultCheckSchedule, func() {
		m.CheckResults(ctx)
	}); err != nil {
		return nil, fmt.Errorf("schedule result checker: %w", err)
	}
	scheduler.Start()
	return scheduler, nil
}

// Discover finds new live matches past the discovery floor and evicts
// fixtures that left the live feed.
func (m *Monitor) Discover(ctx context.Context) {
	snapshots, err := m.provider.LiveMatches(ctx)
	if err != nil {
		metrics.FeedErrors.Inc()
		m.logger.Warn().Err(err).Msg("live match discovery failed, keeping tracked state")
		return
	}

	liveIDs := make(map[int64]bool, len(snapshots))
	for i := range snapshots {
		snapshot := &snapshots[i]
		if snapshot.Status == models.StatusLive {
			liveIDs[snapshot.FixtureID] = true
		}
		decision := m.tracker.Observe(snapshot)
		if decision == tracker.DecisionNew {
			m.logger.Info().
				Int64("fixture_id", snapshot.FixtureID).
				Str("league", snapshot.League).
				Msg("match entered monitoring")
		}
	}

	evicted := m.tracker.EvictStale(liveIDs)
	if len(evicted) > 0 {
		m.logger.Info().Ints64("fixture_ids", evicted).Msg("evicted stale matches")
	}
	metrics.TrackedMatches.Set(float64(m.tracker.Len()))
}

// Poll runs one scoring cycle over every tracked match. A transient feed
// error for one match leaves its state untouched for this cycle and never
// stops the loop.
func (m *Monitor) Poll(ctx context.Context) {
	for _, fixtureID := range m.tracker.TrackedIDs() {
		payload, err := m.provider.MatchPayload(ctx, fixtureID)
		if err != nil {
			metrics.FeedErrors.Inc()
			m.logger.Warn().Err(err).Int64("fixture_id", fixtureID).Msg("fixture poll failed, skipping cycle")
			continue
		}
		if err := m.ProcessPayload(ctx, payload); err != nil {
			m.logger.Error().Err(err).Int64("fixture_id", fixtureID).Msg("payload processing failed")
		}
	}
	m.retryUnsavedAlerts(ctx)
	metrics.PollCycles.Inc()
}

// ProcessPayload runs the decision pipeline for one fixture payload: extract,
// classify, score, record, and fire through the timing gate when this cycle
// is the one allowed to. Also the entry point for push-mode telemetry.
func (m *Monitor) ProcessPayload(ctx context.Context, payload *models.MatchPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := &payload.Snapshot
	decision := m.tracker.Observe(snapshot)
	if decision == tracker.DecisionIgnoredTooEarly || decision == tracker.DecisionIgnoredFinished {
		return nil
	}

	home, away := stats.Extract(payload)
	rating := quality.Classify(quality.PresentKinds(home, away))
	focus := scoring.FocusTeam(snapshot)
	breakdown := m.engine.Score(snapshot, home, away, focus, rating)
	m.tracker.Record(snapshot.FixtureID, home, away, payload.CornerOdds, &breakdown)

	tracked, ok := m.tracker.Lookup(snapshot.FixtureID)
	if !ok {
		return nil
	}

	if !tracker.ShouldFire(&tracked, snapshot.Minute, &breakdown, m.settings.Gate) {
		return nil
	}

	// Commit the alerted state before any dispatch work: the system favors
	// "never alert twice" over "never miss an alert".
	if !m.tracker.MarkAlerted(snapshot.FixtureID, snapshot.Minute) {
		return nil
	}

	m.fireAlert(ctx, snapshot, &breakdown, tracked.TotalCorners(), payload.CornerOdds)
	return nil
}

func (m *Monitor) fireAlert(
	ctx context.Context,
	snapshot *models.MatchSnapshot,
	breakdown *models.ScoreBreakdown,
	totalCorners int,
	quotes []models.CornerQuote,
) {
	metrics.AlertsFired.Inc()

	quote := notify.SelectQuote(quotes, totalCorners)
	record := m.buildRecord(snapshot, breakdown, totalCorners, quote)

	m.logger.Info().
		Int64("fixture_id", snapshot.FixtureID).
		Str("teams", snapshot.Teams()).
		Int("minute", snapshot.Minute).
		Float64("final_score", breakdown.FinalScore).
		Str("over_line", record.OverLine.String()).
		Msg("alert firing")

	text := notify.FormatAlert(snapshot, breakdown, totalCorners, quote)
	if err := m.notifier.SendAlert(ctx, text); err != nil {
		// The alerted flag stays set: a failed dispatch is surfaced, never
		// retried against the same window.
		metrics.DispatchFailures.Inc()
		m.logger.Error().Err(err).Int64("fixture_id", snapshot.FixtureID).Msg("notification dispatch failed")
	}

	if err := m.store.Insert(ctx, record); err != nil {
		// The alert already went out; losing the record would break outcome
		// tracking, so keep it for a later persistence retry.
		metrics.PersistFailures.Inc()
		m.unsavedAlerts = append(m.unsavedAlerts, unsavedAlert{record: record})
		m.logger.Error().Err(err).Int64("fixture_id", snapshot.FixtureID).Msg("alert record insert failed, queued for retry")
	}
}

func (m *Monitor) buildRecord(
	snapshot *models.MatchSnapshot,
	breakdown *models.ScoreBreakdown,
	totalCorners int,
	quote *models.CornerQuote,
) *models.AlertRecord {
	line := decimal.NewFromFloat(float64(totalCorners) + 1.5)
	odds := fallbackOdds
	if quote != nil {
		line = quote.Line
		odds = quote.OverOdds
	}

	return &models.AlertRecord{
		ID:             uuid.New(),
		FixtureID:      snapshot.FixtureID,
		Teams:          snapshot.Teams(),
		ScoreAtAlert:   snapshot.Scoreline(),
		MinuteSent:     snapshot.Minute,
		CornersAtAlert: totalCorners,
		EliteScore:     breakdown.FinalScore,
		OverLine:       line,
		OverOdds:       odds,
		CreatedAt:      time.Now().UTC(),
		Result:         models.ResultPending,
	}
}

func (m *Monitor) retryUnsavedAlerts(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.unsavedAlerts) == 0 {
		return
	}

	remaining := m.unsavedAlerts[:0]
	for _, pending := range m.unsavedAlerts {
		err := m.store.Insert(ctx, pending.record)
		if err == nil {
			m.logger.Info().Str("id", pending.record.ID.String()).Msg("queued alert record persisted")
			continue
		}
		pending.attempts++
		if pending.attempts >= maxPersistAttempts {
			m.logger.Error().
				Err(err).
				Str("id", pending.record.ID.String()).
				Int64("fixture_id", pending.record.FixtureID).
				Int("attempts", pending.attempts).
				Msg("alert record dropped after repeated insert failures")
			continue
		}
		remaining = append(remaining, pending)
	}
	m.unsavedAlerts = remaining
}

// CheckResults resolves outcomes for pending alerts whose matches finished.
// Resolution is idempotent, so a pass that fails midway is simply rerun on
// the next schedule.
func (m *Monitor) CheckResults(ctx context.Context) {
	pending, err := m.store.FindPending(ctx)
	if err != nil {
		m.logger.Error().Err(err).Msg("loading pending alerts failed")
		return
	}
	if len(pending) == 0 {
		return
	}

	m.logger.Info().Int("pending", len(pending)).Msg("checking pending alert results")

	for _, record := range pending {
		finalCorners, finished, err := m.provider.FinalCorners(ctx, record.FixtureID)
		if err != nil {
			metrics.FeedErrors.Inc()
			m.logger.Warn().Err(err).Int64("fixture_id", record.FixtureID).Msg("final corner lookup failed")
			continue
		}
		if !finished {
			continue
		}

		resolved := outcome.Resolve(record, finalCorners, time.Now().UTC())
		if err := m.store.UpdateResult(ctx, resolved.ID, resolved.FinalCorners, resolved.Result, resolved.CheckedAt); err != nil {
			m.logger.Error().Err(err).Str("id", resolved.ID.String()).Msg("result update failed, will retry next pass")
			continue
		}

		metrics.OutcomesResolved.WithLabelValues(string(resolved.Result)).Inc()
		m.logger.Info().
			Str("id", resolved.ID.String()).
			Str("teams", resolved.Teams).
			Str("over_line", resolved.OverLine.String()).
			Int("final_corners", resolved.FinalCorners).
			Str("result", string(resolved.Result)).
			Msg("alert outcome resolved")
	}
}
