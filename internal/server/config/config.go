// Package config handles configuration for the ledger server,
// including defaults, a JSON or TOML file overlay, and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the ledger server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - EndpointAddrHTTP: bind address for the read-only HTTP status API ("" disables it).
//   - StoreDSN: durable store location (memory://, postgres://, sqlite://, redis://).
//   - SecretKey: HMAC secret for verifying access tokens (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: longest token lifetime (exp - iat) the gRPC server accepts; 0 accepts any.
//   - RetentionMinTTL / RetentionTargetTTL: retention window kept alive by file-sync writes.
//     Target must not be shorter than min.
//   - EnforceOwnership: require file/permission ownership for share, revoke and download.
//   - LogLevel: debug, info, warn or error.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: blob storage.
type Config struct {
	EndpointAddrGRPC            string
	EndpointAddrHTTP            string
	StoreDSN                    string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	RetentionMinTTL             time.Duration
	RetentionTargetTTL          time.Duration
	EnforceOwnership            bool
	LogLevel                    string
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.StoreDSN = "memory://"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.RetentionMinTTL = 7 * 24 * time.Hour
	c.RetentionTargetTTL = 30 * 24 * time.Hour
	c.EnforceOwnership = false
	c.LogLevel = "info"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "ledger"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects settings the ledger cannot run with. A retention window
// whose target is shorter than its min would fail every file-sync write.
func (c *Config) Validate() error {
	if c.RetentionMinTTL < 0 {
		return fmt.Errorf("retention min TTL must not be negative, got %s", c.RetentionMinTTL)
	}
	if c.RetentionTargetTTL < c.RetentionMinTTL {
		return fmt.Errorf("retention target TTL %s is shorter than min TTL %s", c.RetentionTargetTTL, c.RetentionMinTTL)
	}
	if c.AccessTokenValidityDuration < 0 {
		return fmt.Errorf("access token validity must not be negative, got %s", c.AccessTokenValidityDuration)
	}
	return nil
}
