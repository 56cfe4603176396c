package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/logger"

	"github.com/rs/zerolog"
)

// Flash is a one-shot banner shown on the next page render and then
// discarded.
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// Flashes stores banners in the session cache engine keyed by the
// session cookie value.
type Flashes struct {
	engine Engine
	ttl    time.Duration
	log    zerolog.Logger
}

func NewFlashes(engine Engine, ttl time.Duration) *Flashes {
	return &Flashes{
		engine: engine,
		ttl:    ttl,
		log:    logger.Get(),
	}
}

func (f *Flashes) Set(ctx context.Context, sessionID string, flash Flash) {
	data, err := json.Marshal(flash)
	if err != nil {
		return
	}
	if err := f.engine.Set(ctx, "flash:"+sessionID, string(data), f.ttl); err != nil {
		f.log.Warn().Err(err).Msg("Failed to store flash message")
	}
}

// Pop returns the pending flash for the session, if any, and deletes it.
func (f *Flashes) Pop(ctx context.Context, sessionID string) (Flash, bool) {
	value, ok, err := f.engine.Get(ctx, "flash:"+sessionID)
	if err != nil {
		f.log.Warn().Err(err).Msg("Failed to read flash message")
		return Flash{}, false
	}
	if !ok {
		return Flash{}, false
	}

	if err := f.engine.Delete(ctx, "flash:"+sessionID); err != nil {
		f.log.Warn().Err(err).Msg("Failed to clear flash message")
	}

	var flash Flash
	if err := json.Unmarshal([]byte(value), &flash); err != nil {
		return Flash{}, false
	}
	return flash, true
}
