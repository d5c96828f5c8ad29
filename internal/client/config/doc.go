// Package config loads runtime configuration for the admissions CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c/--config or ADMISSIONS_CONFIG.
//     Files ending in .yaml or .yml are YAML; anything else is JSON, which
//     may contain comments and trailing commas.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s, --server string          backend base URL
//	-d, --database string        path of the local session database
//	-l, --log-level string       debug, info, warn or error
//	    --token-ttl duration     client-side session lifetime
//	    --timeout duration       per-request timeout
//	    --token-key-file string  seal the stored token with a key kept here
//	    --page-size int          admin listing page size
//	    --aws-region string      region for s3:// downloads
//	    --s3-endpoint string     custom S3 endpoint (path-style)
//
// # File schema
//
// Durations are either strings like "90s" or integer nanoseconds:
//
//	{
//	  // local backend
//	  "server_url": "http://localhost:8080",
//	  "token_ttl": "1h",
//	  "request_timeout": "15s",
//	  "database_path": "admissions.db",
//	  "log_level": "info",
//	  "page_size": 10,
//	  "success_banner_ttl": "3s",
//	  "error_banner_ttl": "5s",
//	}
package config
