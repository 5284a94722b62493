package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays cfg with GCSUP_* environment variables. A .env file
// loaded by the entrypoint (godotenv) surfaces here the same way.
func parseEnv(cfg *Config) {
	if v := os.Getenv("GCSUP_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("GCSUP_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("GCSUP_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("GCSUP_MAX_FILE_SIZE_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxFileSizeMB = n
		}
	}
	if v := os.Getenv("GCSUP_ALLOWED_TYPES"); v != "" {
		cfg.AllowedTypes = splitList(v)
	}
	if v := os.Getenv("GCSUP_BUCKETS"); v != "" {
		cfg.GCSBuckets = splitList(v)
	}
	if v := os.Getenv("GCSUP_DESTINATION_PATHS"); v != "" {
		cfg.DestinationPaths = splitList(v)
	}
	if v := os.Getenv("GCSUP_DIRECT_UPLOAD"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DirectUpload = b
		}
	}
	if v := os.Getenv("GCSUP_STORAGE_ENDPOINT"); v != "" {
		cfg.StorageEndpoint = v
	}
	if v := os.Getenv("GCSUP_STORAGE_ACCESS_KEY"); v != "" {
		cfg.StorageAccessKey = v
	}
	if v := os.Getenv("GCSUP_STORAGE_SECRET_KEY"); v != "" {
		cfg.StorageSecretKey = v
	}
	if v := os.Getenv("GCSUP_STORAGE_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StorageUseSSL = b
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
