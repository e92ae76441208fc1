package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and blanks every variable NewConfig reads
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	for _, key := range []string{
		"YOUTUBE_API_KEY", "YTBRIEF_CHANNEL_BACKEND", "YTBRIEF_YTDLP_PATH",
		"YTBRIEF_TRANSCRIPT_LANGUAGE", "YTBRIEF_LLM_PROVIDER", "OPENAI_API_KEY",
		"OPENAI_BASE_URL", "YTBRIEF_OPENAI_MODEL", "GEMINI_API_KEY",
		"YTBRIEF_GEMINI_MODEL", "YTBRIEF_LISTEN_ADDR", "YTBRIEF_LOG_LEVEL", "PORT",
		"YTBRIEF_DEFAULT_LIMIT", "YTBRIEF_MAX_LIMIT", "YTBRIEF_MAX_TRANSCRIPT_CHARS",
		"YTBRIEF_TRANSCRIPT_TIMEOUT", "YTBRIEF_GENERATION_TIMEOUT", "YTBRIEF_LOOKUP_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
	return tempDir
}

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()
	configDir := filepath.Join(home, ".yt-brief")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644))
}

func TestNewConfig_NoConfigFile(t *testing.T) {
	isolate(t)

	config, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, config.DefaultLimit)
	assert.Equal(t, 12000, config.MaxTranscriptChars)
	assert.Equal(t, 30*time.Second, config.GenerationTimeout)
	assert.Equal(t, "en", config.TranscriptLanguage)
	// no API key means the yt-dlp backend is selected
	assert.Equal(t, ChannelBackendYtDlp, config.ChannelBackend)
}

func TestNewConfig_ConfigFile(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `
youtube_api_key: "file-key"
llm_provider: "gemini"
gemini_api_key: "gem-key"
default_limit: 5
generation_timeout: 45s
`)

	config, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "file-key", config.YouTubeAPIKey)
	assert.Equal(t, ChannelBackendAPI, config.ChannelBackend)
	assert.Equal(t, LLMProviderGemini, config.LLMProvider)
	assert.Equal(t, 5, config.DefaultLimit)
	assert.Equal(t, 45*time.Second, config.GenerationTimeout)
	// untouched values keep their defaults
	assert.Equal(t, 25, config.MaxLimit)
	require.NoError(t, config.Validate())
}

func TestNewConfig_EnvironmentOverride(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `
openai_api_key: "file-openai"
listen_addr: ":9000"
`)

	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("PORT", "7070")
	t.Setenv("YTBRIEF_MAX_LIMIT", "10")
	t.Setenv("YTBRIEF_TRANSCRIPT_TIMEOUT", "5s")

	config, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-openai", config.OpenAIAPIKey)
	assert.Equal(t, ":7070", config.ListenAddr)
	assert.Equal(t, 10, config.MaxLimit)
	assert.Equal(t, 5*time.Second, config.TranscriptTimeout)
}

func TestNewConfig_InvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("YTBRIEF_DEFAULT_LIMIT", "three")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YTBRIEF_DEFAULT_LIMIT")
}

func TestNewConfig_MalformedFile(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, "default_limit: [unclosed")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.ChannelBackend = ChannelBackendYtDlp
		c.OpenAIAPIKey = "sk-test"
		return c
	}

	tests := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "api backend without key", mutate: func(c *Config) { c.ChannelBackend = ChannelBackendAPI }, errorContains: "youtube_api_key"},
		{name: "unknown backend", mutate: func(c *Config) { c.ChannelBackend = "scrape" }, errorContains: "invalid channel_backend"},
		{name: "openai without key", mutate: func(c *Config) { c.OpenAIAPIKey = "" }, errorContains: "openai_api_key"},
		{name: "gemini without key", mutate: func(c *Config) { c.LLMProvider = LLMProviderGemini }, errorContains: "gemini_api_key"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLMProvider = "llama" }, errorContains: "invalid llm_provider"},
		{name: "max below default", mutate: func(c *Config) { c.MaxLimit = 1 }, errorContains: "max_limit"},
		{name: "zero timeout", mutate: func(c *Config) { c.GenerationTimeout = 0 }, errorContains: "timeouts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.errorContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestConfig_Redacted(t *testing.T) {
	c := Default()
	c.OpenAIAPIKey = "sk-1234567890"
	c.YouTubeAPIKey = "abc"

	r := c.Redacted()
	assert.Equal(t, "****7890", r.OpenAIAPIKey)
	assert.Equal(t, "****", r.YouTubeAPIKey)
	assert.Equal(t, "", r.GeminiAPIKey)
	// original untouched
	assert.Equal(t, "sk-1234567890", c.OpenAIAPIKey)
}

func TestInitConfig(t *testing.T) {
	home := isolate(t)

	require.NoError(t, InitConfig("yt-key"))

	configPath, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".yt-brief", "config.yaml"), configPath)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `youtube_api_key: "yt-key"`)

	// the template must load cleanly
	config, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "yt-key", config.YouTubeAPIKey)
	assert.Equal(t, 20*time.Second, config.LookupTimeout)

	// second init refuses to overwrite
	err = InitConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfig_ValidateWithoutGeneration(t *testing.T) {
	c := Default()
	c.ChannelBackend = ChannelBackendYtDlp

	require.Error(t, c.Validate())
	require.NoError(t, c.ValidateWithoutGeneration())

	c.LLMProvider = "llama"
	require.Error(t, c.ValidateWithoutGeneration())
}
