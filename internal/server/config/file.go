package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/fileledger/internal/flagx"
	"github.com/dmitrijs2005/fileledger/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// "90s"-style strings (JSON also accepts integer nanoseconds).
type FileConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc" toml:"endpoint_addr_grpc"`
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" toml:"endpoint_addr_http"`
	StoreDSN                    string         `json:"store_dsn" toml:"store_dsn"`
	SecretKey                   string         `json:"secret_key" toml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" toml:"access_token_validity_duration"`
	RetentionMinTTL             timex.Duration `json:"retention_min_ttl" toml:"retention_min_ttl"`
	RetentionTargetTTL          timex.Duration `json:"retention_target_ttl" toml:"retention_target_ttl"`
	EnforceOwnership            bool           `json:"enforce_ownership" toml:"enforce_ownership"`
	LogLevel                    string         `json:"log_level" toml:"log_level"`
	S3RootUser                  string         `json:"s3_root_user" toml:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password" toml:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket" toml:"s3_bucket"`
	S3Region                    string         `json:"s3_region" toml:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint" toml:"s3_base_endpoint"`
}

func fromConfig(c *Config) *FileConfig {
	return &FileConfig{
		EndpointAddrGRPC:            c.EndpointAddrGRPC,
		EndpointAddrHTTP:            c.EndpointAddrHTTP,
		StoreDSN:                    c.StoreDSN,
		SecretKey:                   c.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: c.AccessTokenValidityDuration},
		RetentionMinTTL:             timex.Duration{Duration: c.RetentionMinTTL},
		RetentionTargetTTL:          timex.Duration{Duration: c.RetentionTargetTTL},
		EnforceOwnership:            c.EnforceOwnership,
		LogLevel:                    c.LogLevel,
		S3RootUser:                  c.S3RootUser,
		S3RootPassword:              c.S3RootPassword,
		S3Bucket:                    c.S3Bucket,
		S3Region:                    c.S3Region,
		S3BaseEndpoint:              c.S3BaseEndpoint,
	}
}

func (f *FileConfig) apply(c *Config) {
	c.EndpointAddrGRPC = f.EndpointAddrGRPC
	c.EndpointAddrHTTP = f.EndpointAddrHTTP
	c.StoreDSN = f.StoreDSN
	c.SecretKey = f.SecretKey
	c.AccessTokenValidityDuration = f.AccessTokenValidityDuration.Duration
	c.RetentionMinTTL = f.RetentionMinTTL.Duration
	c.RetentionTargetTTL = f.RetentionTargetTTL.Duration
	c.EnforceOwnership = f.EnforceOwnership
	c.LogLevel = f.LogLevel
	c.S3RootUser = f.S3RootUser
	c.S3RootPassword = f.S3RootPassword
	c.S3Bucket = f.S3Bucket
	c.S3Region = f.S3Region
	c.S3BaseEndpoint = f.S3BaseEndpoint
}

// parseFile overlays values from the file named by -c/-config onto config.
// Keys missing from the file keep their current values. Files ending in
// .toml are decoded as TOML, anything else as JSON. An unreadable or
// malformed file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := fromConfig(config)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, fc)
	} else {
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}
