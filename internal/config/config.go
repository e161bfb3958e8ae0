package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	applog "stockroom/internal/log"
)

type Config struct {
	Port          string
	DBDSN         string
	MediaDir      string
	MediaURL      string
	LogFile       string
	MaxImageBytes int64
	BodyLimit     int
	SeedUsers     bool
	// CORSOrigins enables CORS for a separately hosted intake form.
	CORSOrigins string
}

func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "stockroom.db"
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	mediaURL := os.Getenv("MEDIA_URL")
	if mediaURL == "" {
		mediaURL = "/media"
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		MediaDir:      media,
		MediaURL:      mediaURL,
		LogFile:       os.Getenv("LOG_FILE"),
		MaxImageBytes: int64(intEnv("MAX_IMAGE_BYTES", 1<<20)),
		BodyLimit:     intEnv("BODY_LIMIT", 16<<20),
		SeedUsers:     boolEnv("SEED_USERS", true),
		CORSOrigins:   os.Getenv("CORS_ORIGINS"),
	}
	applog.Info(nil, "config.load", map[string]any{
		"port":            cfg.Port,
		"db_dsn":          cfg.DBDSN,
		"media_dir":       cfg.MediaDir,
		"media_url":       cfg.MediaURL,
		"log_file":        cfg.LogFile,
		"max_image_bytes": cfg.MaxImageBytes,
		"body_limit":      cfg.BodyLimit,
		"seed_users":      cfg.SeedUsers,
		"cors_origins":    cfg.CORSOrigins,
	})
	return cfg
}

func intEnv(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func boolEnv(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
