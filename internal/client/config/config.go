// Package config holds runtime settings for the upload client: backend
// address, upload policy, the bucket/path catalog, and the optional direct
// storage endpoint.
package config

import (
	"time"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
)

// Config is assembled from defaults, then a JSON file (-c/-config), then
// environment variables, then command-line flags. Later sources win.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StateDir       string

	// upload policy, fixed per deployment
	MaxFileSizeMB int64
	AllowedTypes  []string

	// bucket catalog; the client selects from these, never edits them
	GCSBuckets       []string
	DestinationPaths []string

	// optional direct-to-bucket transport
	DirectUpload     bool
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageUseSSL    bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.StateDir = ".gcsupload"
	c.MaxFileSizeMB = 10
	c.AllowedTypes = []string{
		"image/jpeg", "image/jpg", "image/png", "application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain", "application/zip",
	}
	c.GCSBuckets = []string{"assets-prod", "assets-staging"}
	c.DestinationPaths = []string{"uploads", "uploads/archive"}
	c.StorageEndpoint = "storage.googleapis.com"
	c.StorageUseSSL = true
}

// Policy converts the configured limits into the orchestrator's policy.
func (c *Config) Policy() models.Policy {
	return models.Policy{
		AllowedTypes: c.AllowedTypes,
		MaxSizeBytes: c.MaxFileSizeMB << 20,
	}
}

// Targets expands the catalog into every selectable bucket/path pairing.
func (c *Config) Targets() []models.BucketTarget {
	out := make([]models.BucketTarget, 0, len(c.GCSBuckets)*len(c.DestinationPaths))
	for _, b := range c.GCSBuckets {
		for _, p := range c.DestinationPaths {
			out = append(out, models.BucketTarget{Bucket: b, DestinationPath: p})
		}
	}
	return out
}

// DefaultTarget is the first catalog entry, preselected for the user.
func (c *Config) DefaultTarget() models.BucketTarget {
	var t models.BucketTarget
	if len(c.GCSBuckets) > 0 {
		t.Bucket = c.GCSBuckets[0]
	}
	if len(c.DestinationPaths) > 0 {
		t.DestinationPath = c.DestinationPaths[0]
	}
	return t
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
