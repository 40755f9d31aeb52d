package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS alerts (
	id UUID PRIMARY KEY,
	fixture_id BIGINT NOT NULL,
	teams VARCHAR(255) NOT NULL,
	score_at_alert VARCHAR(50) NOT NULL,
	minute_sent INTEGER NOT NULL,
	corners_at_alert INTEGER NOT NULL,
	elite_score DOUBLE PRECISION NOT NULL,
	over_line NUMERIC(6,2) NOT NULL,
	over_odds NUMERIC(8,3) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	final_corners INTEGER,
	result VARCHAR(20) NOT NULL DEFAULT 'pending',
	checked_at TIMESTAMPTZ,
	match_finished BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_alerts_fixture_id ON alerts (fixture_id);

-- At most one pending alert per fixture at any time.
CREATE UNIQUE INDEX IF NOT EXISTS idx_alerts_pending_fixture
	ON alerts (fixture_id) WHERE result = 'pending';
`

// alertRow is the table shape; nullable columns are converted at the edge.
type alertRow struct {
	ID             uuid.UUID       `db:"id"`
	FixtureID      int64           `db:"fixture_id"`
	Teams          string          `db:"teams"`
	ScoreAtAlert   string          `db:"score_at_alert"`
	MinuteSent     int             `db:"minute_sent"`
	CornersAtAlert int             `db:"corners_at_alert"`
	EliteScore     float64         `db:"elite_score"`
	OverLine       decimal.Decimal `db:"over_line"`
	OverOdds       decimal.Decimal `db:"over_odds"`
	CreatedAt      time.Time       `db:"created_at"`
	FinalCorners   sql.NullInt64   `db:"final_corners"`
	Result         string          `db:"result"`
	CheckedAt      sql.NullTime    `db:"checked_at"`
	MatchFinished  bool            `db:"match_finished"`
}

func (r alertRow) toRecord() models.AlertRecord {
	record := models.AlertRecord{
		ID:             r.ID,
		FixtureID:      r.FixtureID,
		Teams:          r.Teams,
		ScoreAtAlert:   r.ScoreAtAlert,
		MinuteSent:     r.MinuteSent,
		CornersAtAlert: r.CornersAtAlert,
		EliteScore:     r.EliteScore,
		OverLine:       r.OverLine,
		OverOdds:       r.OverOdds,
		CreatedAt:      r.CreatedAt,
		Result:         models.AlertResult(r.Result),
		MatchFinished:  r.MatchFinished,
	}
	if r.FinalCorners.Valid {
		record.FinalCorners = int(r.FinalCorners.Int64)
	}
	if r.CheckedAt.Valid {
		record.CheckedAt = r.CheckedAt.Time
	}
	return record
}

// PostgresStore persists alert records.
type PostgresStore struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewPostgresStore connects to Postgres and ensures the schema exists.
func NewPostgresStore(dsn string, logger zerolog.Logger) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	store := &PostgresStore{
		db:     db,
		logger: logger.With().Str("component", "alert_store").Logger(),
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init alerts schema: %w", err)
	}
	return store, nil
}

// Insert writes a new alert record. The pending-uniqueness index rejects a
// second pending record for the same fixture.
func (s *PostgresStore) Insert(ctx context.Context, record *models.AlertRecord) error {
	const query = `
		INSERT INTO alerts (
			id, fixture_id, teams, score_at_alert, minute_sent,
			corners_at_alert, elite_score, over_line, over_odds,
			created_at, result, match_finished
		) VALUES (
			:id, :fixture_id, :teams, :score_at_alert, :minute_sent,
			:corners_at_alert, :elite_score, :over_line, :over_odds,
			:created_at, :result, :match_finished
		)`

	row := alertRow{
		ID:             record.ID,
		FixtureID:      record.FixtureID,
		Teams:          record.Teams,
		ScoreAtAlert:   record.ScoreAtAlert,
		MinuteSent:     record.MinuteSent,
		CornersAtAlert: record.CornersAtAlert,
		EliteScore:     record.EliteScore,
		OverLine:       record.OverLine,
		OverOdds:       record.OverOdds,
		CreatedAt:      record.CreatedAt,
		Result:         string(record.Result),
		MatchFinished:  record.MatchFinished,
	}
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("insert alert for fixture %d: %w", record.FixtureID, err)
	}

	s.logger.Info().
		Str("id", record.ID.String()).
		Int64("fixture_id", record.FixtureID).
		Str("teams", record.Teams).
		Str("over_line", record.OverLine.String()).
		Msg("alert record saved")
	return nil
}

// FindPending returns every alert still awaiting outcome resolution.
func (s *PostgresStore) FindPending(ctx context.Context) ([]models.AlertRecord, error) {
	const query = `SELECT * FROM alerts WHERE result = 'pending' ORDER BY created_at`

	var rows []alertRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("find pending alerts: %w", err)
	}
	return toRecords(rows), nil
}

// UpdateResult finalizes a pending record. Terminal records are untouched,
// matching the resolver's write-once contract; updating one is not an error.
func (s *PostgresStore) UpdateResult(
	ctx context.Context,
	id uuid.UUID,
	finalCorners int,
	result models.AlertResult,
	checkedAt time.Time,
) error {
	const query = `
		UPDATE alerts
		SET final_corners = $2, result = $3, checked_at = $4, match_finished = TRUE
		WHERE id = $1 AND result = 'pending'`

	res, err := s.db.ExecContext(ctx, query, id, finalCorners, string(result), checkedAt)
	if err != nil {
		return fmt.Errorf("update alert %s result: %w", id, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		s.logger.Debug().Str("id", id.String()).Msg("alert already resolved, skipping update")
		return nil
	}

	s.logger.Info().
		Str("id", id.String()).
		Int("final_corners", finalCorners).
		Str("result", string(result)).
		Msg("alert result recorded")
	return nil
}

// Recent returns the latest alerts, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	const query = `SELECT * FROM alerts ORDER BY created_at DESC LIMIT $1`

	var rows []alertRow
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list recent alerts: %w", err)
	}
	return toRecords(rows), nil
}

// PerformanceStats aggregates outcomes across all alerts.
func (s *PostgresStore) PerformanceStats(ctx context.Context) (models.PerformanceStats, error) {
	const query = `
		SELECT
			COUNT(*) AS total_alerts,
			COUNT(*) FILTER (WHERE result = 'win') AS wins,
			COUNT(*) FILTER (WHERE result = 'loss') AS losses,
			COUNT(*) FILTER (WHERE result = 'refund') AS refunds,
			COUNT(*) FILTER (WHERE result = 'pending') AS pending
		FROM alerts`

	var stats models.PerformanceStats
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return models.PerformanceStats{}, fmt.Errorf("load performance stats: %w", err)
	}

	// Refunds return the stake; win rate is computed over decided bets only.
	if decided := stats.Wins + stats.Losses; decided > 0 {
		stats.WinRate = float64(stats.Wins) / float64(decided) * 100
	}
	return stats, nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func toRecords(rows []alertRow) []models.AlertRecord {
	records := make([]models.AlertRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records
}
