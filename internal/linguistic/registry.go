package linguistic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

type Settings struct {
	BaseURL string
	Timeout time.Duration
}

type BackendFactory func(ctx context.Context, s Settings) (nlp.Parser, error)

// Registry maps backend names (NLP_BACKEND) to constructors.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]BackendFactory)}
}

// DefaultRegistry knows the "http" backend.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("http", func(_ context.Context, s Settings) (nlp.Parser, error) {
		if strings.TrimSpace(s.BaseURL) == "" {
			return nil, nil
		}
		return NewHTTPBackend(s.BaseURL, s.Timeout), nil
	})
	return r
}

func (r *Registry) Register(name string, f BackendFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get builds the named backend. A factory may return (nil, nil) when the
// backend is not configured.
func (r *Registry) Get(ctx context.Context, name string, s Settings) (nlp.Parser, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown linguistic backend: %s", name)
	}
	return f(ctx, s)
}
