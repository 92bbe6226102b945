package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	Address        string
	DatabasePath   string
	PoolMaxConns   int
	AcquireTimeout time.Duration
	BusyTimeout    time.Duration
	BusyAttempts   int
	BusyBaseDelay  time.Duration
	BusyMaxDelay   time.Duration
	SecretKey      string
	ClaimKeyID     string
	ClaimTTL       time.Duration
	CertPath       string
	KeyPath        string
	RateRPS        int
	WorkerPoolSize int
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:            get("APP_ENV", "dev"),
		Address:        get("ADDRESS", ":8080"),
		DatabasePath:   get("DATABASE_PATH", "harmony.db"),
		PoolMaxConns:   getInt("POOL_MAX_CONNS", 10),
		AcquireTimeout: getDuration("POOL_ACQUIRE_TIMEOUT", 5*time.Second),
		BusyTimeout:    getDuration("SQLITE_BUSY_TIMEOUT", 5*time.Second),
		BusyAttempts:   getInt("BUSY_MAX_ATTEMPTS", 5),
		BusyBaseDelay:  getDuration("BUSY_BASE_DELAY", 10*time.Millisecond),
		BusyMaxDelay:   getDuration("BUSY_MAX_DELAY", 250*time.Millisecond),
		SecretKey:      get("SECRET_KEY", "changeme-secret"),
		ClaimKeyID:     get("CLAIM_KEY_ID", "v1"),
		ClaimTTL:       getDuration("CLAIM_TTL", 168*time.Hour),
		CertPath:       get("CERT_PATH", ""),
		KeyPath:        get("KEY_PATH", ""),
		RateRPS:        getInt("RATE_LIMIT_RPS", 50),
		WorkerPoolSize: getInt("WORKER_POOL_SIZE", 4),
	}
}

func get(key, def string) string { v := os.Getenv(key); if v == "" { return def }; return v }

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
