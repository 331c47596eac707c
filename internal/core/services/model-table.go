package services

import (
	"fmt"
	"sync"

	"ct-price-predictor/internal/core/domain"
)

// ModelTable resolves a model choice to its remote file identifier. It can be
// swapped at runtime when the config file changes.
type ModelTable struct {
	mu  sync.RWMutex
	ids map[domain.ModelChoice]string
}

func NewModelTable(overrides map[domain.ModelChoice]string) *ModelTable {
	t := &ModelTable{}
	t.Replace(overrides)
	return t
}

// Replace resets the table to the defaults and applies non-empty overrides.
func (t *ModelTable) Replace(overrides map[domain.ModelChoice]string) {
	ids := make(map[domain.ModelChoice]string, len(domain.DefaultModelIDs))
	for k, v := range domain.DefaultModelIDs {
		ids[k] = v
	}
	for k, v := range overrides {
		if v != "" && domain.IsKnownModel(k) {
			ids[k] = v
		}
	}

	t.mu.Lock()
	t.ids = ids
	t.mu.Unlock()
}

func (t *ModelTable) Resolve(choice domain.ModelChoice) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[choice]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownModel, choice)
	}
	return id, nil
}
