package numerator

import (
	"context"
	"sync"
	"time"
)

// MockGenerator is a test implementation of Generator that counts per
// rendered date in memory.
type MockGenerator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// GetNextNumber implements Generator.
func (m *MockGenerator) GetNextNumber(_ context.Context, cfg Config, period time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	key := cfg.Prefix + period.UTC().Format(cfg.DateLayout)
	m.counters[key]++
	return Format(cfg, period, m.counters[key]), nil
}

var _ Generator = (*MockGenerator)(nil)
