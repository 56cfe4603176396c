package session

import (
	"context"
	"testing"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEngineSetGet(t *testing.T) {
	engine := NewMemoryEngine()
	defer engine.Close()
	ctx := context.Background()

	require.NoError(t, engine.Set(ctx, "k", "v", time.Minute))

	value, ok, err := engine.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestMemoryEngineMissingKey(t *testing.T) {
	engine := NewMemoryEngine()
	defer engine.Close()

	_, ok, err := engine.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryEngineExpiry(t *testing.T) {
	engine := NewMemoryEngine()
	defer engine.Close()
	ctx := context.Background()

	require.NoError(t, engine.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok, err := engine.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryEngineDelete(t *testing.T) {
	engine := NewMemoryEngine()
	defer engine.Close()
	ctx := context.Background()

	require.NoError(t, engine.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, engine.Delete(ctx, "k"))

	_, ok, err := engine.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryEngineOverwrite(t *testing.T) {
	engine := NewMemoryEngine()
	defer engine.Close()
	ctx := context.Background()

	require.NoError(t, engine.Set(ctx, "k", "first", time.Minute))
	require.NoError(t, engine.Set(ctx, "k", "second", time.Minute))

	value, _, err := engine.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestNewEngineSelection(t *testing.T) {
	engine, err := NewEngine(&config.Config{})
	require.NoError(t, err)
	defer engine.Close()
	assert.IsType(t, &MemoryEngine{}, engine)

	_, err = NewEngine(&config.Config{Session: config.SessionConfig{Engine: "bogus"}})
	assert.Error(t, err)
}

func TestFlashPopIsOneShot(t *testing.T) {
	engine := NewMemoryEngine()
	defer engine.Close()
	flashes := NewFlashes(engine, time.Minute)
	ctx := context.Background()

	flashes.Set(ctx, "sess1", Flash{Kind: "success", Message: "Review deleted"})

	flash, ok := flashes.Pop(ctx, "sess1")
	require.True(t, ok)
	assert.Equal(t, "success", flash.Kind)
	assert.Equal(t, "Review deleted", flash.Message)

	_, ok = flashes.Pop(ctx, "sess1")
	assert.False(t, ok)
}

func TestFlashScopedToSession(t *testing.T) {
	engine := NewMemoryEngine()
	defer engine.Close()
	flashes := NewFlashes(engine, time.Minute)
	ctx := context.Background()

	flashes.Set(ctx, "sess1", Flash{Kind: "error", Message: "Something failed"})

	_, ok := flashes.Pop(ctx, "sess2")
	assert.False(t, ok)

	flash, ok := flashes.Pop(ctx, "sess1")
	require.True(t, ok)
	assert.Equal(t, "error", flash.Kind)
}
