package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv seeds the process environment from path. Variables that are
// already set win; a missing file is not an error.
var loadDotEnv = func(path string) {
	_ = godotenv.Load(path)
}

// parseEnv overlays cfg with the variables the original deployment used.
// Unset variables leave the current value alone.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	str("AWS_REGION", &cfg.S3Region)
	str("AWS_BUCKET_NAME", &cfg.S3Bucket)
	str("AWS_ENDPOINT_URL_S3", &cfg.S3BaseEndpoint)
	str("AWS_ACCESS_KEY_ID", &cfg.S3AccessKey)
	str("AWS_SECRET_ACCESS_KEY", &cfg.S3SecretKey)

	if v, ok := lookup("AWS_S3_USE_PATH_STYLE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.S3UsePathStyle = b
		}
	}

	str("GOOGLE_CLIENT_ID", &cfg.GoogleClientID)
	str("GOOGLE_CLIENT_SECRET", &cfg.GoogleClientSecret)
	str("GOPHDRIVE_CALLBACK_ADDR", &cfg.CallbackAddr)

	str("EMAILJS_SERVICE_ID", &cfg.EmailJSServiceID)
	str("EMAILJS_TEMPLATE_ID", &cfg.EmailJSTemplateID)
	str("EMAILJS_PUBLIC_KEY", &cfg.EmailJSPublicKey)
	str("EMAILJS_PRIVATE_KEY", &cfg.EmailJSPrivateKey)

	str("GOPHDRIVE_DB", &cfg.DatabasePath)
	str("SESSION_SECRET", &cfg.SessionSecret)

	if v, ok := lookup("GOPHDRIVE_SESSION_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionValidity = d
		}
	}

	str("GOPHDRIVE_LOG_LEVEL", &cfg.LogLevel)
}
