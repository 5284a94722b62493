package config

import (
	"encoding/json"
	"os"
	"time"
)

// jsonConfig is the DTO for the JSON config file. Field names for the bucket
// catalog match the deployment catalog format (gcsBuckets/destinationPaths).
type jsonConfig struct {
	APIBaseURL            string   `json:"api_base_url"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds"`
	StateDir              string   `json:"state_dir"`
	MaxFileSizeMB         int64    `json:"max_file_size_mb"`
	AllowedTypes          []string `json:"allowed_types"`
	GCSBuckets            []string `json:"gcsBuckets"`
	DestinationPaths      []string `json:"destinationPaths"`
	DirectUpload          *bool    `json:"direct_upload"`
	StorageEndpoint       string   `json:"storage_endpoint"`
	StorageUseSSL         *bool    `json:"storage_use_ssl"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// Absent file path means no JSON layer. Only fields present in the file
// override the current values.
func parseJSON(cfg *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSeconds) * time.Second
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.MaxFileSizeMB > 0 {
		cfg.MaxFileSizeMB = jc.MaxFileSizeMB
	}
	if len(jc.AllowedTypes) > 0 {
		cfg.AllowedTypes = jc.AllowedTypes
	}
	if len(jc.GCSBuckets) > 0 {
		cfg.GCSBuckets = jc.GCSBuckets
	}
	if len(jc.DestinationPaths) > 0 {
		cfg.DestinationPaths = jc.DestinationPaths
	}
	if jc.DirectUpload != nil {
		cfg.DirectUpload = *jc.DirectUpload
	}
	if jc.StorageEndpoint != "" {
		cfg.StorageEndpoint = jc.StorageEndpoint
	}
	if jc.StorageUseSSL != nil {
		cfg.StorageUseSSL = *jc.StorageUseSSL
	}
}
