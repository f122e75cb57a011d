package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// APIKeyEnvVars are checked in order; the first non-empty one wins.
var APIKeyEnvVars = []string{"MODFETCH_API_KEY", "CURSEFORGE_API_KEY"}

// Settings holds all configuration options.
type Settings struct {
	// Catalog settings
	APIURL    string `json:"api_url"`
	APIKey    string `json:"api_key"`
	RateLimit int    `json:"rate_limit"` // requests per second, 0 disables
	UserAgent string `json:"user_agent"`

	// Download settings
	MaxConcurrentDownloads int     `json:"max_concurrent_downloads"`
	RetryCooldown          float64 `json:"retry_cooldown"`   // seconds between rounds
	MaxRetryRounds         int     `json:"max_retry_rounds"` // 0 retries until everything succeeds
	RequestTimeout         float64 `json:"request_timeout"`  // seconds, 0 disables
	DownloadTimeout        float64 `json:"download_timeout"` // seconds, 0 disables

	// Logging
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"` // console or json
	LogPath   string `json:"log_path"`   // directory for a rotated log file, empty disables
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		APIURL:    "https://api.curseforge.com/v1",
		RateLimit: 5,
		UserAgent: "modfetch",

		MaxConcurrentDownloads: 1,
		RetryCooldown:          2.0,
		MaxRetryRounds:         0,
		RequestTimeout:         60,
		DownloadTimeout:        600,

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv loads envFile into the process environment when it exists,
// then overrides APIKey from APIKeyEnvVars. Variables already set in the
// environment take precedence over the file.
func (s *Settings) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	for _, key := range APIKeyEnvVars {
		if v := os.Getenv(key); v != "" {
			s.APIKey = v
			break
		}
	}
	return nil
}

// Validate checks that the settings can drive a download run.
func (s *Settings) Validate() error {
	if s.APIURL == "" {
		return errors.New("api_url must be set")
	}
	if s.APIKey == "" {
		return fmt.Errorf("no API key: set api_key or %s", APIKeyEnvVars[0])
	}
	if s.MaxConcurrentDownloads < 1 {
		return fmt.Errorf("max_concurrent_downloads must be at least 1, got %d", s.MaxConcurrentDownloads)
	}
	if s.RateLimit < 0 || s.MaxRetryRounds < 0 || s.RetryCooldown < 0 {
		return errors.New("rate_limit, max_retry_rounds and retry_cooldown must not be negative")
	}
	return nil
}

// RetryCooldownDuration returns RetryCooldown as a time.Duration.
func (s *Settings) RetryCooldownDuration() time.Duration {
	return seconds(s.RetryCooldown)
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (s *Settings) RequestTimeoutDuration() time.Duration {
	return seconds(s.RequestTimeout)
}

// DownloadTimeoutDuration returns DownloadTimeout as a time.Duration.
func (s *Settings) DownloadTimeoutDuration() time.Duration {
	return seconds(s.DownloadTimeout)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
