package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathhelper/internal/llm"
	"github.com/abhisek/mathhelper/internal/skill"
)

// isolate runs the test in an empty directory with no vendor keys set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "default", cfg.Student)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, skill.TierEasy, cfg.Tier())
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.LLMConfig().Enabled())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	yaml := `
student: maya
database:
  driver: sqlite
  dsn: progress.db
session:
  tier: hard
  seed: 42
llm:
  provider: mock
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("MATHHELPER_STUDENT", "leo")
	t.Setenv("MATHHELPER_LLM_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "leo", cfg.Student, "env beats file")
	assert.Equal(t, "progress.db", cfg.DB.DSN)
	assert.Equal(t, skill.TierHard, cfg.Tier())
	assert.Equal(t, uint64(42), cfg.Session.Seed)

	lc := cfg.LLMConfig()
	assert.Equal(t, llm.ProviderMock, lc.Provider)
	assert.Equal(t, 5*time.Second, lc.Timeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MATHHELPER_SESSION_TIER=normal\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MATHHELPER_SESSION_TIER") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, skill.TierNormal, cfg.Tier())
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	lc := cfg.LLMConfig()
	assert.Equal(t, llm.ProviderOpenAI, lc.Provider)
	assert.Equal(t, "sk-test", lc.APIKey)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Student: "maya", DB: DB{Driver: "sqlite"}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, true},
		{"postgres without dsn", func(c *Config) { c.DB.Driver = "postgres" }, true},
		{"postgres with dsn", func(c *Config) {
			c.DB.Driver = "postgres"
			c.DB.DSN = "postgres://localhost/mathhelper"
		}, false},
		{"blank student", func(c *Config) { c.Student = "  " }, true},
		{"llm without key", func(c *Config) { c.LLM.Provider = llm.ProviderGemini }, true},
	}

	isolate(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
