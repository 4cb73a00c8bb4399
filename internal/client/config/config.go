// Package config loads runtime configuration for ledgerctl.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags given before the command name.
//
// Supported flags
//
//	-a string   address:port of the ledger gRPC endpoint
//	-k string   access token sent with every call
//	-s string   secret key used by the token command
//	-v int      validity of issued tokens (minutes)
//	-w int      per-call timeout (seconds)
//
// JSON durations accept "90s"-style strings or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "request_timeout": "10s"
//	}
package config

import "time"

type Config struct {
	ServerEndpointAddr    string
	AccessToken           string
	SecretKey             string
	TokenValidityDuration time.Duration
	RequestTimeout        time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 60 * time.Minute
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the config file and flags, and
// returns the arguments left after the flags (the command and its operands).
func LoadConfig(args []string) (*Config, []string) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	rest := parseFlags(cfg, args)
	return cfg, rest
}
