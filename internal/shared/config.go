package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StoreFile  = "file"
	StoreMySQL = "mysql"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	DataDir        string
	ImagesPrefix   string
	MaxUploadBytes int64
	StoreBackend   string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	WarmWorkers    int
	LogFile        string
}

// Load reads an optional .env file, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env present but unreadable; using process environment")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       ":" + env("PORT", "8080"),
		DataDir:        env("DATA_DIR", "data"),
		ImagesPrefix:   "/images",
		MaxUploadBytes: int64(atoi("MAX_UPLOAD_MB", 32)) << 20,
		StoreBackend:   env("STORE_BACKEND", StoreFile),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotels?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		RateLimitRPS:   atof("RATE_LIMIT_RPS", 0),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 20),
		WarmWorkers:    atoi("WARM_WORKERS", 8),
		LogFile:        env("LOG_FILE", ""),
	}
	if c.StoreBackend != StoreFile && c.StoreBackend != StoreMySQL {
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, using file")
		c.StoreBackend = StoreFile
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
