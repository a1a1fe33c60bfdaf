package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultPort            = "8080"
	defaultBaseURL         = "http://localhost:8080"
	defaultDBPath          = "./data/cloudpaste.db"
	defaultDataDir         = "./data/files"
	defaultAdminUsername   = "admin"
	defaultMaxFileSize     = 25 << 20 // 25 MiB per file
	defaultTotalStorage    = 6 << 30  // 6 GiB across all live files
	defaultCleanupInterval = time.Hour
)

// Config holds all runtime settings, read once from the environment at startup.
type Config struct {
	Port    string
	BaseURL string

	DBPath  string
	DataDir string

	// StorageBackend selects where file blobs live: "local" or "s3".
	StorageBackend string
	S3Endpoint     string
	S3Bucket       string
	S3Region       string
	S3AccessKeyID  string
	S3SecretKey    string
	S3UsePathStyle bool

	AdminUsername string
	AdminPassword string

	MaxFileSize     int64
	TotalStorage    int64
	CleanupInterval time.Duration

	Verbose bool
}

// New builds a Config from environment variables, falling back to defaults
// where a variable is unset.
func New() *Config {
	cfg := &Config{
		Port:            defaultPort,
		BaseURL:         defaultBaseURL,
		DBPath:          defaultDBPath,
		DataDir:         defaultDataDir,
		StorageBackend:  "local",
		AdminUsername:   defaultAdminUsername,
		MaxFileSize:     defaultMaxFileSize,
		TotalStorage:    defaultTotalStorage,
		CleanupInterval: defaultCleanupInterval,
	}

	applyEnv("PORT", &cfg.Port)
	applyEnv("BASE_URL", &cfg.BaseURL)
	applyEnv("DB_PATH", &cfg.DBPath)
	applyEnv("DATA_DIR", &cfg.DataDir)
	applyEnv("STORAGE_BACKEND", &cfg.StorageBackend)
	applyEnv("S3_ENDPOINT", &cfg.S3Endpoint)
	applyEnv("S3_BUCKET", &cfg.S3Bucket)
	applyEnv("S3_REGION", &cfg.S3Region)
	applyEnv("S3_ACCESS_KEY_ID", &cfg.S3AccessKeyID)
	applyEnv("S3_SECRET_ACCESS_KEY", &cfg.S3SecretKey)
	applyEnvBool("S3_USE_PATH_STYLE", &cfg.S3UsePathStyle)
	applyEnv("ADMIN_USERNAME", &cfg.AdminUsername)
	applyEnv("ADMIN_PASSWORD", &cfg.AdminPassword)
	applyEnvInt64("MAX_FILE_SIZE", &cfg.MaxFileSize)
	applyEnvInt64("TOTAL_STORAGE", &cfg.TotalStorage)
	applyEnvDuration("CLEANUP_INTERVAL", &cfg.CleanupInterval)
	applyEnvBool("VERBOSE", &cfg.Verbose)

	return cfg
}

func applyEnv(key string, target *string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = val
	}
}

func applyEnvBool(key string, target *bool) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			*target = b
		}
	}
}

func applyEnvInt64(key string, target *int64) {
	if val, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			*target = n
		}
	}
}

func applyEnvDuration(key string, target *time.Duration) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			*target = d
		}
	}
}
