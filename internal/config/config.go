package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
)

// Config holds runtime settings for the gophdrive CLI.
//
// Fields:
//   - S3*: object storage location and static credentials. Empty credentials
//     fall back to the default AWS credential chain.
//   - Google*: OAuth client used for sign-in; CallbackAddr is the loopback
//     address the callback server listens on.
//   - EmailJS*: share-by-email delivery.
//   - DatabasePath: local sqlite file holding the persisted session.
//   - SessionSecret / SessionValidity: signing input and lifetime of the
//     persisted session token.
//   - BrowseURLTTL / ShareURLTTL: presigned URL lifetimes.
type Config struct {
	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool

	GoogleClientID     string
	GoogleClientSecret string
	CallbackAddr       string

	EmailJSEndpoint   string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string

	DatabasePath    string
	SessionSecret   string
	SessionValidity time.Duration

	BrowseURLTTL       time.Duration
	ShareURLTTL        time.Duration
	MaxBatchSize       int
	RefreshConcurrency int

	LogLevel string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SessionSecret must be overridden outside of local development.
func (c *Config) LoadDefaults() {
	c.S3Region = "us-east-1"
	c.S3Bucket = "gophdrive"
	c.S3BaseEndpoint = ""
	c.S3UsePathStyle = false

	c.CallbackAddr = "127.0.0.1:8085"

	c.EmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

	c.DatabasePath = "gophdrive.db"
	c.SessionSecret = "secretKey"
	c.SessionValidity = 7 * 24 * time.Hour

	c.BrowseURLTTL = common.BrowseURLTTL
	c.ShareURLTTL = common.ShareURLTTL
	c.MaxBatchSize = common.MaxBatchSize
	c.RefreshConcurrency = 8

	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, environment, JSON and flags,
// later sources winning.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseEnv(cfg, os.LookupEnv)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
