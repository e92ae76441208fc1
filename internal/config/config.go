package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Channel lookup backends
const (
	ChannelBackendAPI   = "api"
	ChannelBackendYtDlp = "ytdlp"
)

// Text generation providers
const (
	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"
)

// Config holds all configuration for the application. It is resolved once
// at startup and passed to the components that need it.
type Config struct {
	YouTubeAPIKey  string `yaml:"youtube_api_key"`
	ChannelBackend string `yaml:"channel_backend"`
	YtDlpPath      string `yaml:"ytdlp_path"`

	TranscriptLanguage string `yaml:"transcript_language"`

	LLMProvider   string `yaml:"llm_provider"`
	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	OpenAIModel   string `yaml:"openai_model"`
	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiModel   string `yaml:"gemini_model"`

	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`

	DefaultLimit       int           `yaml:"default_limit"`
	MaxLimit           int           `yaml:"max_limit"`
	MaxTranscriptChars int           `yaml:"max_transcript_chars"`
	TranscriptTimeout  time.Duration `yaml:"transcript_timeout"`
	GenerationTimeout  time.Duration `yaml:"generation_timeout"`
	LookupTimeout      time.Duration `yaml:"lookup_timeout"`
}

// Default returns the configuration used when neither file nor env set a value
func Default() *Config {
	return &Config{
		YtDlpPath:          "yt-dlp",
		TranscriptLanguage: "en",
		LLMProvider:        LLMProviderOpenAI,
		OpenAIModel:        "gpt-4o-mini",
		GeminiModel:        "gemini-2.5-flash",
		ListenAddr:         ":8080",
		LogLevel:           "info",
		DefaultLimit:       3,
		MaxLimit:           25,
		MaxTranscriptChars: 12000,
		TranscriptTimeout:  15 * time.Second,
		GenerationTimeout:  30 * time.Second,
		LookupTimeout:      20 * time.Second,
	}
}

// NewConfig loads configuration with the following priority:
// Environment variables > Config file (optional) > defaults
func NewConfig() (*Config, error) {
	config := Default()

	if err := loadConfigFile(config); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if config.ChannelBackend == "" {
		if config.YouTubeAPIKey != "" {
			config.ChannelBackend = ChannelBackendAPI
		} else {
			config.ChannelBackend = ChannelBackendYtDlp
		}
	}

	return config, nil
}

// Validate checks that the configuration can drive the selected backends
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateWithoutGeneration skips the LLM checks, for commands that never
// generate text (list, transcript, channel)
func (c *Config) ValidateWithoutGeneration() error {
	return c.validate(false)
}

func (c *Config) validate(generation bool) error {
	switch c.ChannelBackend {
	case ChannelBackendAPI:
		if c.YouTubeAPIKey == "" {
			return fmt.Errorf("youtube_api_key is required for channel_backend %q", ChannelBackendAPI)
		}
	case ChannelBackendYtDlp:
		if c.YtDlpPath == "" {
			return fmt.Errorf("ytdlp_path is required for channel_backend %q", ChannelBackendYtDlp)
		}
	default:
		return fmt.Errorf("invalid channel_backend %q, must be one of: %s, %s", c.ChannelBackend, ChannelBackendAPI, ChannelBackendYtDlp)
	}

	switch c.LLMProvider {
	case LLMProviderOpenAI:
		if generation && c.OpenAIAPIKey == "" {
			return fmt.Errorf("openai_api_key is required for llm_provider %q", LLMProviderOpenAI)
		}
	case LLMProviderGemini:
		if generation && c.GeminiAPIKey == "" {
			return fmt.Errorf("gemini_api_key is required for llm_provider %q", LLMProviderGemini)
		}
	default:
		return fmt.Errorf("invalid llm_provider %q, must be one of: %s, %s", c.LLMProvider, LLMProviderOpenAI, LLMProviderGemini)
	}

	if c.TranscriptLanguage == "" {
		return fmt.Errorf("transcript_language cannot be empty")
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be at least 1")
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be at least default_limit (%d)", c.DefaultLimit)
	}
	if c.MaxTranscriptChars < 1 {
		return fmt.Errorf("max_transcript_chars must be at least 1")
	}
	if c.TranscriptTimeout <= 0 || c.GenerationTimeout <= 0 || c.LookupTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	return nil
}

// Redacted returns a copy with secrets masked, for display
func (c *Config) Redacted() *Config {
	out := *c
	out.YouTubeAPIKey = mask(c.YouTubeAPIKey)
	out.OpenAIAPIKey = mask(c.OpenAIAPIKey)
	out.GeminiAPIKey = mask(c.GeminiAPIKey)
	return &out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// InitConfig creates a new configuration file template
func InitConfig(youtubeAPIKey string) error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := getConfigFilePath()
	if err != nil {
		return err
	}

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	yamlContent := fmt.Sprintf(`# yt-brief configuration file
# Environment variables override every value below.

# YouTube Data API key (YOUTUBE_API_KEY). Without it channels are
# resolved through yt-dlp.
youtube_api_key: "%s"
# channel_backend: api | ytdlp
ytdlp_path: "yt-dlp"
transcript_language: "en"

# llm_provider: openai | gemini
llm_provider: "openai"
openai_api_key: ""
# openai_base_url: "https://api.openai.com/v1"
openai_model: "gpt-4o-mini"
gemini_api_key: ""
gemini_model: "gemini-2.5-flash"

listen_addr: ":8080"
log_level: "info"

default_limit: 3
max_limit: 25
max_transcript_chars: 12000
transcript_timeout: 15s
generation_timeout: 30s
lookup_timeout: 20s
`, youtubeAPIKey)

	if err := os.WriteFile(configPath, []byte(yamlContent), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	return getConfigFilePath()
}

// getConfigDir returns the configuration directory path (~/.yt-brief)
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".yt-brief"), nil
}

// getConfigFilePath returns the full path to the config file
func getConfigFilePath() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// loadConfigFile loads configuration from ~/.yt-brief/config.yaml
func loadConfigFile(config *Config) error {
	configPath, err := getConfigFilePath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// applyEnv overrides config values from environment variables
func applyEnv(config *Config) error {
	strs := map[string]*string{
		"YOUTUBE_API_KEY":             &config.YouTubeAPIKey,
		"YTBRIEF_CHANNEL_BACKEND":     &config.ChannelBackend,
		"YTBRIEF_YTDLP_PATH":          &config.YtDlpPath,
		"YTBRIEF_TRANSCRIPT_LANGUAGE": &config.TranscriptLanguage,
		"YTBRIEF_LLM_PROVIDER":        &config.LLMProvider,
		"OPENAI_API_KEY":              &config.OpenAIAPIKey,
		"OPENAI_BASE_URL":             &config.OpenAIBaseURL,
		"YTBRIEF_OPENAI_MODEL":        &config.OpenAIModel,
		"GEMINI_API_KEY":              &config.GeminiAPIKey,
		"YTBRIEF_GEMINI_MODEL":        &config.GeminiModel,
		"YTBRIEF_LISTEN_ADDR":         &config.ListenAddr,
		"YTBRIEF_LOG_LEVEL":           &config.LogLevel,
	}
	for key, dst := range strs {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	// PORT is what most hosting platforms inject
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && os.Getenv("YTBRIEF_LISTEN_ADDR") == "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		config.ListenAddr = ":" + port
	}

	ints := map[string]*int{
		"YTBRIEF_DEFAULT_LIMIT":        &config.DefaultLimit,
		"YTBRIEF_MAX_LIMIT":            &config.MaxLimit,
		"YTBRIEF_MAX_TRANSCRIPT_CHARS": &config.MaxTranscriptChars,
	}
	for key, dst := range ints {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"YTBRIEF_TRANSCRIPT_TIMEOUT": &config.TranscriptTimeout,
		"YTBRIEF_GENERATION_TIMEOUT": &config.GenerationTimeout,
		"YTBRIEF_LOOKUP_TIMEOUT":     &config.LookupTimeout,
	}
	for key, dst := range durations {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			*dst = d
		}
	}

	return nil
}
