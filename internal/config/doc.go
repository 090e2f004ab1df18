// Package config loads runtime configuration for the gophdrive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, optionally seeded from a .env file in the working directory
//     (see parseEnv).
//  3. Optional JSON file selected with -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-g string   S3 region
//	-b string   S3 bucket
//	-e string   S3 base endpoint (empty for AWS)
//	-u string   S3 access key id
//	-p string   S3 secret access key
//	-d string   local database path
//	-s string   session signing secret
//	-l string   OAuth loopback callback address
//	-t int      session validity, hours
//	-m int      maximum files per upload selection
//
// # JSON schema
//
// Durations use timex.Duration, so "1h" and integer nanoseconds both work:
//
//	{
//	  "s3_bucket": "gophdrive",
//	  "s3_region": "eu-central-1",
//	  "browse_url_ttl": "1h",
//	  "share_url_ttl": "72h"
//	}
//
// Only keys present in the file override earlier values.
package config
