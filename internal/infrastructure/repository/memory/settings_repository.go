package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
)

type SettingsRepository struct {
	mu   sync.RWMutex
	item settings.Settings
}

func NewSettingsRepository(initial settings.Settings) *SettingsRepository {
	return &SettingsRepository{item: initial}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.item, nil
}

func (r *SettingsRepository) Save(_ context.Context, item settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.item = item
	return nil
}
