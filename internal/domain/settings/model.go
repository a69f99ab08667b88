package settings

import (
	"context"
	"time"
)

// Settings is the singleton game configuration editable by admins.
type Settings struct {
	AllowTransfers     bool
	ShowDashboardStats bool
	MaintenanceMode    bool
	UpdatedAt          time.Time
}

// Default is used until an admin saves settings for the first time.
func Default() Settings {
	return Settings{
		AllowTransfers:     true,
		ShowDashboardStats: true,
	}
}

type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, item Settings) error
}
