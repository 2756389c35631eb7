package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDSN       string
	RedisURL    string
	MediaDir    string
	LogFile     string
	SeedCatalog bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "fastenhub.db" // sqlite file in project root
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./fastenhub.log"
	}
	seed := os.Getenv("SEED_CATALOG") == "true"

	cfg := Config{Port: port, DBDSN: dsn, RedisURL: redisURL, MediaDir: media, LogFile: logFile, SeedCatalog: seed}
	log.Printf("[config] PORT=%s DB_DSN=%s REDIS_URL=%s MEDIA_DIR=%s LOG_FILE=%s SEED_CATALOG=%v",
		cfg.Port, cfg.DBDSN, cfg.RedisURL, cfg.MediaDir, cfg.LogFile, cfg.SeedCatalog)
	return cfg
}
