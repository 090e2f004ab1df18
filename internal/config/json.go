package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophdrive/internal/flagx"
	"github.com/dmitrijs2005/gophdrive/internal/timex"
)

// JsonConfig is the on-disk DTO. Pointer fields distinguish "absent" from
// "zero", so a partial file only overrides the keys it names.
type JsonConfig struct {
	S3Region       *string `json:"s3_region"`
	S3Bucket       *string `json:"s3_bucket"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
	S3UsePathStyle *bool   `json:"s3_use_path_style"`

	GoogleClientID     *string `json:"google_client_id"`
	GoogleClientSecret *string `json:"google_client_secret"`
	CallbackAddr       *string `json:"callback_addr"`

	EmailJSEndpoint   *string `json:"emailjs_endpoint"`
	EmailJSServiceID  *string `json:"emailjs_service_id"`
	EmailJSTemplateID *string `json:"emailjs_template_id"`
	EmailJSPublicKey  *string `json:"emailjs_public_key"`
	EmailJSPrivateKey *string `json:"emailjs_private_key"`

	DatabasePath    *string         `json:"database_path"`
	SessionSecret   *string         `json:"session_secret"`
	SessionValidity *timex.Duration `json:"session_validity"`

	BrowseURLTTL       *timex.Duration `json:"browse_url_ttl"`
	ShareURLTTL        *timex.Duration `json:"share_url_ttl"`
	MaxBatchSize       *int            `json:"max_batch_size"`
	RefreshConcurrency *int            `json:"refresh_concurrency"`

	LogLevel *string `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// It panics when the file cannot be read or parsed.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.S3UsePathStyle != nil {
		cfg.S3UsePathStyle = *jc.S3UsePathStyle
	}

	setString(&cfg.GoogleClientID, jc.GoogleClientID)
	setString(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	setString(&cfg.CallbackAddr, jc.CallbackAddr)

	setString(&cfg.EmailJSEndpoint, jc.EmailJSEndpoint)
	setString(&cfg.EmailJSServiceID, jc.EmailJSServiceID)
	setString(&cfg.EmailJSTemplateID, jc.EmailJSTemplateID)
	setString(&cfg.EmailJSPublicKey, jc.EmailJSPublicKey)
	setString(&cfg.EmailJSPrivateKey, jc.EmailJSPrivateKey)

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	if jc.SessionValidity != nil {
		cfg.SessionValidity = jc.SessionValidity.Duration
	}

	if jc.BrowseURLTTL != nil {
		cfg.BrowseURLTTL = jc.BrowseURLTTL.Duration
	}
	if jc.ShareURLTTL != nil {
		cfg.ShareURLTTL = jc.ShareURLTTL.Duration
	}
	if jc.MaxBatchSize != nil {
		cfg.MaxBatchSize = *jc.MaxBatchSize
	}
	if jc.RefreshConcurrency != nil {
		cfg.RefreshConcurrency = *jc.RefreshConcurrency
	}

	setString(&cfg.LogLevel, jc.LogLevel)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
