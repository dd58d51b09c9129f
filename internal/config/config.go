package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Catalog provider (TMDB-compatible)
	TMDBAPIKey             string
	TMDBBaseURL            string
	CatalogCacheTTLMinutes int // Response cache TTL (default: 15)

	// Generative provider (Gemini-compatible). Optional: when the key is
	// absent the chat surfaces a localized error instead of calling out.
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	// Display language applied to every catalog request until the user
	// saves a preference (e.g. "en-US", "pt-BR")
	DefaultLanguage string

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/cineverse.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("GEMINI_MODEL", "gemini-flash-latest")
	viper.SetDefault("CATALOG_CACHE_TTL_MINUTES", 15)
	viper.SetDefault("DEFAULT_LANGUAGE", "en-US")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "cineverse")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// Catalog provider
		TMDBAPIKey:             viper.GetString("TMDB_API_KEY"),
		TMDBBaseURL:            viper.GetString("TMDB_BASE_URL"),
		CatalogCacheTTLMinutes: viper.GetInt("CATALOG_CACHE_TTL_MINUTES"),

		// Generative provider
		GeminiAPIKey:  viper.GetString("GEMINI_API_KEY"),
		GeminiBaseURL: viper.GetString("GEMINI_BASE_URL"),
		GeminiModel:   viper.GetString("GEMINI_MODEL"),

		// Language
		DefaultLanguage: viper.GetString("DEFAULT_LANGUAGE"),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "cineverse.db"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields. The generative key is deliberately not
	// required: its absence is a supported runtime state surfaced in chat.
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	return config, nil
}
