package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/admissions/internal/flagx"
	"github.com/dmitrijs2005/admissions/internal/logging"
)

// Config holds runtime settings for the admissions CLI.
type Config struct {
	ServerURL        string
	TokenTTL         time.Duration
	RequestTimeout   time.Duration
	DatabasePath     string
	TokenKeyFile     string
	LogLevel         string
	PageSize         int
	SuccessBannerTTL time.Duration
	ErrorBannerTTL   time.Duration

	AWSRegion   string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.TokenTTL = time.Hour
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "admissions.db"
	c.LogLevel = "info"
	c.PageSize = 10
	c.SuccessBannerTTL = 3 * time.Second
	c.ErrorBannerTTL = 5 * time.Second
}

// LoadConfig applies defaults, then the config file, then flags from args
// (without the program name), and validates the result.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is LoadConfig over os.Args that exits on error.
func MustLoad() *Config {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	return cfg
}

func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("server_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		errs = append(errs, fmt.Errorf("server_url: %q is not an http(s) URL", c.ServerURL))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token_ttl must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database_path is required"))
	}
	if c.PageSize <= 0 {
		errs = append(errs, errors.New("page_size must be positive"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}
