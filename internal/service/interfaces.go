package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

// Notifier is the outbound notification channel. It accepts a preformatted
// text payload; anything structured stays inside the engine.
type Notifier interface {
	SendAlert(ctx context.Context, text string) error
}

// AlertStore persists alert records and their resolved outcomes.
type AlertStore interface {
	Insert(ctx context.Context, record *models.AlertRecord) error
	FindPending(ctx context.Context) ([]models.AlertRecord, error)
	UpdateResult(ctx context.Context, id uuid.UUID, finalCorners int, result models.AlertResult, checkedAt time.Time) error
	Recent(ctx context.Context, limit int) ([]models.AlertRecord, error)
	PerformanceStats(ctx context.Context) (models.PerformanceStats, error)
}

// SnapshotCache caches the dashboard projection with a short TTL.
type SnapshotCache interface {
	SetSnapshot(ctx context.Context, snapshot *models.DashboardSnapshot) error
	GetSnapshot(ctx context.Context) (*models.DashboardSnapshot, bool, error)
}
