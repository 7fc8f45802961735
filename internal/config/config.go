package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the binaries need from the environment.
// All variables use the GESDOC_ prefix.
type Config struct {
	Addr        string
	PostgresDSN string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir     string
	BucketURL     string
	BucketKey     string
	MaxUploadSize int64

	RateBurst  int
	RatePerSec int

	CORSOrigins []string
}

// Load reads the configuration from the environment. Only the JWT
// secret is mandatory; everything else has a workable default.
func Load() (Config, error) {
	cfg := Config{
		Addr:          ":" + getEnv("GESDOC_PORT", "8080"),
		PostgresDSN:   os.Getenv("GESDOC_PG_DSN"),
		JWTSecret:     os.Getenv("GESDOC_JWT_SECRET"),
		UploadDir:     getEnv("GESDOC_UPLOAD_DIR", "./uploads"),
		BucketURL:     os.Getenv("GESDOC_BUCKET_URL"),
		BucketKey:     os.Getenv("GESDOC_BUCKET_KEY"),
		MaxUploadSize: 10 << 20,
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("GESDOC_JWT_SECRET is required")
	}

	ttl, err := getDuration("GESDOC_TOKEN_TTL", time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenTTL = ttl

	if cfg.RateBurst, err = getInt("GESDOC_RATE_BURST", 20); err != nil {
		return Config{}, err
	}
	if cfg.RatePerSec, err = getInt("GESDOC_RATE_PER_SEC", 10); err != nil {
		return Config{}, err
	}

	origins := getEnv("GESDOC_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
