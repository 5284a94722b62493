package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, int64(10), c.MaxFileSizeMB)
	assert.Contains(t, c.AllowedTypes, "application/pdf")
	assert.NotEmpty(t, c.GCSBuckets)
	assert.NotEmpty(t, c.DestinationPaths)
}

func TestPolicy(t *testing.T) {
	var c Config
	c.LoadDefaults()

	p := c.Policy()
	assert.Equal(t, int64(10<<20), p.MaxSizeBytes)
	assert.True(t, p.Allows("image/png"))
	assert.False(t, p.Allows("application/octet-stream"))
}

func TestTargetsAndDefaultTarget(t *testing.T) {
	c := Config{
		GCSBuckets:       []string{"b1", "b2"},
		DestinationPaths: []string{"p1", "p2", "p3"},
	}

	targets := c.Targets()
	assert.Len(t, targets, 6)
	assert.Contains(t, targets, models.BucketTarget{Bucket: "b2", DestinationPath: "p3"})

	// first entry of each list is preselected
	assert.Equal(t, models.BucketTarget{Bucket: "b1", DestinationPath: "p1"}, c.DefaultTarget())
}

func TestLoadConfig_UsesDefaultsWithoutOverrides(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIBaseURL)
	assert.Equal(t, ".gcsupload", cfg.StateDir)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("GCSUP_API_BASE_URL", "https://api.example.com")
	t.Setenv("GCSUP_MAX_FILE_SIZE_MB", "25")
	t.Setenv("GCSUP_BUCKETS", "alpha, beta")
	t.Setenv("GCSUP_REQUEST_TIMEOUT", "90s")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "https://api.example.com", c.APIBaseURL)
	assert.Equal(t, int64(25), c.MaxFileSizeMB)
	assert.Equal(t, []string{"alpha", "beta"}, c.GCSBuckets)
	assert.Equal(t, 90*time.Second, c.RequestTimeout)
}

func TestFilterArgs(t *testing.T) {
	args := []string{"-a", "http://x", "--unknown", "val", "-t=15", "-z"}
	got := filterArgs(args, []string{"-a", "-t"})
	assert.Equal(t, []string{"-a", "http://x", "-t=15"}, got)
}
