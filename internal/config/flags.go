package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Durations are accepted as whole hours. Unknown flags are filtered out
// beforehand with flagx.FilterArgs; a malformed value panics.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-g", "-b", "-e", "-u", "-p", "-d", "-s", "-l", "-t", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key id")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret access key")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "session signing secret")
	fs.StringVar(&cfg.CallbackAddr, "l", cfg.CallbackAddr, "OAuth callback listen address")

	sessionValidity := fs.Int("t", int(cfg.SessionValidity.Hours()), "session validity (in hours)")
	fs.IntVar(&cfg.MaxBatchSize, "m", cfg.MaxBatchSize, "max files per upload selection")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionValidity = time.Duration(*sessionValidity) * time.Hour
}
