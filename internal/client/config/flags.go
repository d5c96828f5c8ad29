package config

import (
	"io"

	"github.com/dmitrijs2005/admissions/internal/flagx"
	"github.com/spf13/pflag"
)

var knownFlags = []string{
	"-s", "--server",
	"-d", "--database",
	"-l", "--log-level",
	"--token-ttl",
	"--timeout",
	"--token-key-file",
	"--page-size",
	"--aws-region",
	"--s3-endpoint",
}

// parseFlags overlays cfg with the flags found in args. Unknown arguments
// are filtered out with flagx.FilterArgs so they do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("admissions", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&cfg.ServerURL, "server", "s", cfg.ServerURL, "backend base URL")
	fs.StringVarP(&cfg.DatabasePath, "database", "d", cfg.DatabasePath, "path of the local session database")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "debug, info, warn or error")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "client-side session lifetime")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.TokenKeyFile, "token-key-file", cfg.TokenKeyFile, "seal the stored token with a key kept in this file")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "admin listing page size")
	fs.StringVar(&cfg.AWSRegion, "aws-region", cfg.AWSRegion, "region for s3:// downloads")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "custom S3 endpoint")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
