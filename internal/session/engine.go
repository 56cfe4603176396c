// Package session provides the per-session cache used for one-shot
// flash messages. The engine is selected by configuration: an
// in-process map for single-instance deployments, Redis when sessions
// must survive restarts or span instances.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/config"
)

// Engine is a small TTL'd key-value store scoped to browser sessions.
type Engine interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NewEngine builds the engine named by cfg.Session.Engine.
func NewEngine(cfg *config.Config) (Engine, error) {
	switch cfg.Session.Engine {
	case "", "memory":
		return NewMemoryEngine(), nil
	case "redis":
		return NewRedisEngine(cfg)
	default:
		return nil, fmt.Errorf("unknown session cache engine: %q", cfg.Session.Engine)
	}
}
