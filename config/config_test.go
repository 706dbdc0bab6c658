package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JOBMATE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GROQ_MODEL", "")
	t.Setenv("MESSAGE_SENDER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "llama3-8b-8192", cfg.LLM.GroqModel)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.GroqBaseURL)
	assert.Equal(t, "mock", cfg.Capabilities.MessageSender)
	assert.Equal(t, 360, cfg.Scheduler.IngestIntervalMinutes)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  port: "9090"
llm:
  groq_model: llama-3.1-8b-instant
  groq_api_key: from-yaml
scheduler:
  enabled: true
  alert_workers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("JOBMATE_CONFIG", path)
	t.Setenv("PORT", "")
	t.Setenv("GROQ_MODEL", "")
	t.Setenv("GROQ_API_KEY", "from-env")
	t.Setenv("ALERT_WORKERS", "")
	t.Setenv("SCHEDULER_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.GroqModel)
	assert.Equal(t, "from-env", cfg.LLM.GroqAPIKey)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 2, cfg.Scheduler.AlertWorkers)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))
	t.Setenv("JOBMATE_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestRedisOptions(t *testing.T) {
	opt, err := RedisOptions("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opt.Addr)
	assert.Equal(t, 20, opt.PoolSize)

	opt, err = RedisOptions("redis://:pw@cache.internal:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opt.Addr)
	assert.Equal(t, "pw", opt.Password)
	assert.Equal(t, 2, opt.DB)

	_, err = RedisOptions("  ")
	assert.Error(t, err)
}
