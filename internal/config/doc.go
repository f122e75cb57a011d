// Package config provides configuration management for modfetch.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Reading the API key from the environment or a .env file
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// 5 catalog requests per second
//	// One download at a time
//	// Failed entries retried every 2 seconds until they succeed
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # API Key
//
// The key is never required in the config file:
//
//	err := settings.ApplyEnv(".env") // MODFETCH_API_KEY or CURSEFORGE_API_KEY
//
// # Configuration Options
//
// Settings includes options for:
//   - Catalog endpoint, key and rate limit
//   - Concurrent download limit
//   - Retry cooldown and an optional cap on retry rounds
//   - Request and download timeouts
//   - Logging level, format and log file directory
package config
