package config

import (
	"fmt"
	"os"
)

// Config holds everything the server needs from the environment. It is
// loaded once in main and passed into the components that need it.
type Config struct {
	Port          string
	MongoURI      string
	DatabaseName  string
	JWTSecret     string
	PredictionURL string
	CORSOrigins   string
}

// Load reads the configuration from the environment. MONGODB_URI,
// JWT_SECRET and PREDICTION_URL are required; the rest have defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "3000"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		DatabaseName:  getenv("DATABASE_NAME", "gdmcare"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PredictionURL: os.Getenv("PREDICTION_URL"),
		CORSOrigins:   getenv("CORS_ORIGINS", "http://localhost:8080"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PredictionURL == "" {
		return nil, fmt.Errorf("PREDICTION_URL is required")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
