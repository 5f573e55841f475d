package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr   string
	DBPath string

	// URL du document de configuration distante (fetch best-effort au boot).
	ConfigURL string

	// Budget global côté client HTTP; remonté comme erreur de connectivité.
	HTTPTimeout time.Duration

	// Requêtes sortantes par seconde vers l'API WordPress.
	RequestsPerSecond float64
}

func Default() Config {
	return Config{
		Addr:              envOr("RADIOTECA_ADDR", "127.0.0.1:8080"),
		DBPath:            envOr("RADIOTECA_DB_PATH", "radioteca.db"),
		ConfigURL:         envOr("RADIOTECA_CONFIG_URL", "https://api.radioteca.fm/app/config.json"),
		HTTPTimeout:       envDurationOr("RADIOTECA_HTTP_TIMEOUT", 15*time.Second),
		RequestsPerSecond: envFloatOr("RADIOTECA_RPS", 4),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
