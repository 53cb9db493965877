package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

func TestNewAppConfig(t *testing.T) {
	cfg := NewAppConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
	assert.Equal(t, 10, cfg.Retrieval.CandidateLimit)
	assert.InDelta(t, 0.3, float64(cfg.Retrieval.MinScore), 1e-6)
	assert.InDelta(t, 1.15, float64(cfg.Retrieval.OwnerBoost), 1e-6)
	assert.Equal(t, types.BackendLocal, cfg.Scheduler.Backend)
}

func TestAppConfigValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := NewAppConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("InvalidChunker", func(t *testing.T) {
		cfg := NewAppConfig()
		cfg.Chunker.ChunkOverlap = cfg.Chunker.ChunkSize
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingSection", func(t *testing.T) {
		cfg := NewAppConfig()
		cfg.Store = nil
		assert.Error(t, cfg.Validate())
	})
}

func TestAppConfigYAMLRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := NewAppConfig()
	cfg.Embedder.Model = "agri-hash-v2"
	cfg.Embedder.Dimension = 256
	cfg.Store.Backend = types.BackendMemory

	require.NoError(t, cfg.ToYAMLFile(configPath))

	loaded := NewAppConfig()
	require.NoError(t, loaded.FromYAMLFile(configPath))

	assert.Equal(t, "agri-hash-v2", loaded.Embedder.Model)
	assert.Equal(t, 256, loaded.Embedder.Dimension)
	assert.Equal(t, types.BackendMemory, loaded.Store.Backend)
}

func TestFromYAMLFileMissing(t *testing.T) {
	cfg := NewAppConfig()
	assert.Error(t, cfg.FromYAMLFile("/nonexistent/config.yaml"))
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("AGRIASSIST_OPENAI_API_KEY", "sk-test")
	t.Setenv("AGRIASSIST_CHAT_MODEL", "llama3:8b")
	t.Setenv("AGRIASSIST_LOG_LEVEL", "debug")

	cfg := NewAppConfig()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "sk-test", cfg.ChatModel.APIKey)
	assert.Equal(t, "sk-test", cfg.Embedder.APIKey)
	assert.Equal(t, "llama3:8b", cfg.ChatModel.Model)
	assert.Equal(t, "debug", cfg.LogLevel)
}
