package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the gateway configuration, read from the environment.
type Config struct {
	Port string

	OracleURL    string
	OracleAPIKey string

	WhisperBaseURL string
	WhisperAPIKey  string
	WhisperModel   string

	FrontendDir    string
	ScratchDir     string
	AllowedOrigins []string
}

// Load reads configuration from the environment. ORACLE_URL is the only
// required setting; everything else has a local-dev default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		OracleURL:      os.Getenv("ORACLE_URL"),
		OracleAPIKey:   os.Getenv("ORACLE_API_KEY"),
		WhisperBaseURL: os.Getenv("WHISPER_BASE_URL"),
		WhisperAPIKey:  os.Getenv("WHISPER_API_KEY"),
		WhisperModel:   os.Getenv("WHISPER_MODEL"),
		FrontendDir:    getenv("FRONTEND_DIR", "doe-frontend/dist"),
		ScratchDir:     os.Getenv("SCRATCH_DIR"),
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if cfg.OracleURL == "" {
		return nil, fmt.Errorf("ORACLE_URL is not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
