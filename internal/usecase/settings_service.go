package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

// UpdateSettingsInput carries optional fields; nil leaves the value unchanged.
type UpdateSettingsInput struct {
	AllowTransfers     *bool
	ShowDashboardStats *bool
	MaintenanceMode    *bool
}

type SettingsService struct {
	settingsRepo settings.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewSettingsService(settingsRepo settings.Repository, logger *logging.Logger) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *SettingsService) GetSettings(ctx context.Context) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.GetSettings")
	defer span.End()

	item, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return item, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.UpdateSettings")
	defer span.End()

	item, err := s.GetSettings(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	if input.AllowTransfers != nil {
		item.AllowTransfers = *input.AllowTransfers
	}
	if input.ShowDashboardStats != nil {
		item.ShowDashboardStats = *input.ShowDashboardStats
	}
	if input.MaintenanceMode != nil {
		item.MaintenanceMode = *input.MaintenanceMode
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.settingsRepo.Save(ctx, item); err != nil {
		return settings.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.InfoContext(ctx, "settings updated",
		"allow_transfers", item.AllowTransfers,
		"show_dashboard_stats", item.ShowDashboardStats,
		"maintenance_mode", item.MaintenanceMode,
	)
	return item, nil
}

// MaintenanceMode reports whether non-admin traffic should be refused.
func (s *SettingsService) MaintenanceMode(ctx context.Context) (bool, error) {
	item, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("get settings: %w", err)
	}
	return item.MaintenanceMode, nil
}
