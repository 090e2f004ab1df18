package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the EmailJS REST send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSConfig identifies the EmailJS account and template.
type EmailJSConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is required by EmailJS for calls made outside a browser
	// unless the account allows non-browser API access.
	PrivateKey string
}

// ErrNotConfigured is returned by Send when the client lacks credentials.
var ErrNotConfigured = errors.New("emailjs client not configured")

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateFields `json:"template_params"`
}

// EmailJSClient sends template emails through the EmailJS REST API. EmailJS
// throttles at one request per second, so Send waits on a limiter with the
// same rate before each call.
type EmailJSClient struct {
	cfg        EmailJSConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logging.Logger
}

// NewEmailJSClient returns a client for cfg.
func NewEmailJSClient(cfg EmailJSConfig, logger logging.Logger) *EmailJSClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &EmailJSClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		logger:     logger.With("module", "notify"),
	}
}

// IsConfigured reports whether service, template and public key are set.
func (c *EmailJSClient) IsConfigured() bool {
	return c.cfg.ServiceID != "" && c.cfg.TemplateID != "" && c.cfg.PublicKey != ""
}

// Send posts fields to EmailJS. fields.ToEmail is set to to.
func (c *EmailJSClient) Send(ctx context.Context, to string, fields TemplateFields) (Receipt, error) {
	if !c.IsConfigured() {
		return Receipt{}, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Receipt{}, fmt.Errorf("emailjs rate limit: %w", err)
	}

	fields.ToEmail = to
	body, err := json.Marshal(sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: fields,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("marshal emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("emailjs request: %w", err)
	}
	defer resp.Body.Close()

	text, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	rcpt := Receipt{Status: resp.StatusCode, Text: strings.TrimSpace(string(text))}

	if resp.StatusCode >= 400 {
		return rcpt, fmt.Errorf("emailjs: status %d: %s", rcpt.Status, rcpt.Text)
	}

	c.logger.Info(ctx, "share email sent", "to", to, "file", fields.FileName)
	return rcpt, nil
}
