package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
)

type settingsTableModel struct {
	AllowTransfers     bool      `db:"allow_transfers"`
	ShowDashboardStats bool      `db:"show_dashboard_stats"`
	MaintenanceMode    bool      `db:"maintenance_mode"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// SettingsRepository stores the singleton row id=1. Get falls back to
// settings.Default until the row is first saved.
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	const query = `
SELECT allow_transfers, show_dashboard_stats, maintenance_mode, updated_at
FROM app_settings
WHERE id = 1`

	var row settingsTableModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return settings.Default(), nil
		}
		return settings.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings.Settings{
		AllowTransfers:     row.AllowTransfers,
		ShowDashboardStats: row.ShowDashboardStats,
		MaintenanceMode:    row.MaintenanceMode,
		UpdatedAt:          row.UpdatedAt.UTC(),
	}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, item settings.Settings) error {
	const query = `
INSERT INTO app_settings (id, allow_transfers, show_dashboard_stats, maintenance_mode, updated_at)
VALUES (1, :allow_transfers, :show_dashboard_stats, :maintenance_mode, :updated_at)
ON CONFLICT (id)
DO UPDATE SET
    allow_transfers = EXCLUDED.allow_transfers,
    show_dashboard_stats = EXCLUDED.show_dashboard_stats,
    maintenance_mode = EXCLUDED.maintenance_mode,
    updated_at = EXCLUDED.updated_at`

	return execNamed(ctx, r.db, query, map[string]any{
		"allow_transfers":      item.AllowTransfers,
		"show_dashboard_stats": item.ShowDashboardStats,
		"maintenance_mode":     item.MaintenanceMode,
		"updated_at":           item.UpdatedAt,
	}, "save settings")
}
