package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP status API bind address ("" disables it)
//	-d string   store DSN
//	-s string   JWT HMAC secret key
//	-t int      longest accepted access token lifetime, minutes (0 accepts any)
//	-m int      retention min TTL, hours
//	-x int      retention target TTL, hours
//	-o          enforce file/permission ownership
//	-l string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-w", "-d", "-s", "-t", "-m", "-x", "-o", "-l", "-u", "-p", "-b", "-g", "-e"},
		"-o")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP status API address and port")
	fs.StringVar(&config.StoreDSN, "d", config.StoreDSN, "store DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "longest accepted access token lifetime (in minutes)")
	retentionMin := fs.Int("m", int(config.RetentionMinTTL.Hours()), "retention min TTL (in hours)")
	retentionTarget := fs.Int("x", int(config.RetentionTargetTTL.Hours()), "retention target TTL (in hours)")

	fs.BoolVar(&config.EnforceOwnership, "o", config.EnforceOwnership, "enforce ownership on share, revoke and download")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations are only overwritten when given, so sub-unit values from a config file survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
		case "m":
			config.RetentionMinTTL = time.Duration(*retentionMin) * time.Hour
		case "x":
			config.RetentionTargetTTL = time.Duration(*retentionTarget) * time.Hour
		}
	})
}
