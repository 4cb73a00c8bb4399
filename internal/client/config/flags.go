package config

import (
	"flag"
	"time"
)

// parseFlags reads the flags in front of the command and returns the rest.
// -c/-config are accepted here too; the file itself was read by parseJSON.
func parseFlags(config *Config, args []string) []string {
	fs := flag.NewFlagSet("ledgerctl", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "server address and port")
	fs.StringVar(&config.AccessToken, "k", config.AccessToken, "access token")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key for the token command")
	validity := fs.Int("v", int(config.TokenValidityDuration.Minutes()), "issued token validity (in minutes)")
	timeout := fs.Int("w", int(config.RequestTimeout.Seconds()), "per-call timeout (in seconds)")
	fs.String("c", "", "path to config file (short)")
	fs.String("config", "", "path to config file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			config.TokenValidityDuration = time.Duration(*validity) * time.Minute
		case "w":
			config.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})

	return fs.Args()
}
