package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/admissions/internal/timex"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding the config file. Nil
// fields were absent and leave the current value alone.
type FileConfig struct {
	ServerURL        *string         `json:"server_url" yaml:"server_url"`
	TokenTTL         *timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	RequestTimeout   *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath     *string         `json:"database_path" yaml:"database_path"`
	TokenKeyFile     *string         `json:"token_key_file" yaml:"token_key_file"`
	LogLevel         *string         `json:"log_level" yaml:"log_level"`
	PageSize         *int            `json:"page_size" yaml:"page_size"`
	SuccessBannerTTL *timex.Duration `json:"success_banner_ttl" yaml:"success_banner_ttl"`
	ErrorBannerTTL   *timex.Duration `json:"error_banner_ttl" yaml:"error_banner_ttl"`
	AWSRegion        *string         `json:"aws_region" yaml:"aws_region"`
	S3Endpoint       *string         `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3AccessKey      *string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey      *string         `json:"s3_secret_key" yaml:"s3_secret_key"`
}

// parseFile overlays cfg with the values set in the file at path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &fc)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, fc.ServerURL)
	setDuration(&cfg.TokenTTL, fc.TokenTTL)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.TokenKeyFile, fc.TokenKeyFile)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.PageSize != nil {
		cfg.PageSize = *fc.PageSize
	}
	setDuration(&cfg.SuccessBannerTTL, fc.SuccessBannerTTL)
	setDuration(&cfg.ErrorBannerTTL, fc.ErrorBannerTTL)
	setString(&cfg.AWSRegion, fc.AWSRegion)
	setString(&cfg.S3Endpoint, fc.S3Endpoint)
	setString(&cfg.S3AccessKey, fc.S3AccessKey)
	setString(&cfg.S3SecretKey, fc.S3SecretKey)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
