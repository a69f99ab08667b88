package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

func TestSettingsService_UpdateSettings_PartialUpdate(t *testing.T) {
	t.Parallel()

	repo := memory.NewSettingsRepository(settings.Default())
	service := NewSettingsService(repo, logging.NewNop())
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	on := true
	got, err := service.UpdateSettings(t.Context(), UpdateSettingsInput{MaintenanceMode: &on})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if !got.MaintenanceMode || !got.AllowTransfers || !got.ShowDashboardStats {
		t.Fatalf("unexpected settings: %+v", got)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected updated_at: got=%v want=%v", got.UpdatedAt, now)
	}

	maintenance, err := service.MaintenanceMode(t.Context())
	if err != nil {
		t.Fatalf("maintenance mode: %v", err)
	}
	if !maintenance {
		t.Fatalf("expected maintenance mode on")
	}

	off := false
	got, err = service.UpdateSettings(t.Context(), UpdateSettingsInput{AllowTransfers: &off})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if got.AllowTransfers || !got.MaintenanceMode {
		t.Fatalf("unexpected settings after second update: %+v", got)
	}
}
