package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fileledger/internal/flagx"
	"github.com/dmitrijs2005/fileledger/internal/timex"
)

type JSONConfig struct {
	ServerEndpointAddr    string         `json:"server_endpoint_addr"`
	AccessToken           string         `json:"access_token"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
}

// parseJSON overlays the file named by -c/-config. Keys missing from the
// file keep their current values.
func parseJSON(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := JSONConfig{
		ServerEndpointAddr:    config.ServerEndpointAddr,
		AccessToken:           config.AccessToken,
		SecretKey:             config.SecretKey,
		TokenValidityDuration: timex.Duration{Duration: config.TokenValidityDuration},
		RequestTimeout:        timex.Duration{Duration: config.RequestTimeout},
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	config.ServerEndpointAddr = jc.ServerEndpointAddr
	config.AccessToken = jc.AccessToken
	config.SecretKey = jc.SecretKey
	config.TokenValidityDuration = jc.TokenValidityDuration.Duration
	config.RequestTimeout = jc.RequestTimeout.Duration
}
