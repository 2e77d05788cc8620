// Package marian implements mt.Provider against a MarianMT HTTP sidecar.
package marian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/mt"
	"github.com/kbukum/voicebridge/provider"
)

const (
	// ProviderName is the registered name for the Marian provider.
	ProviderName = "marian"

	defaultURL     = "http://localhost:8388"
	defaultTimeout = 60 * time.Second
)

// Config holds configuration for the Marian translation provider.
type Config struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills unset fields with sidecar defaults.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = defaultURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Provider implements mt.Provider using a MarianMT HTTP sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Marian translation provider.
func NewProvider(cfg Config) *Provider {
	cfg.ApplyDefaults()
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Factory returns a provider.Factory that creates Marian providers from
// a generic config map.
func Factory() provider.Factory[mt.Provider] {
	return func(cfg map[string]any) (mt.Provider, error) {
		mc := Config{}
		if v, ok := cfg["url"].(string); ok {
			mc.URL = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			mc.Timeout = v
		}
		return NewProvider(mc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Marian sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Translate sends text to the sidecar and returns the translation.
func (p *Provider) Translate(ctx context.Context, req mt.Request) (*mt.Result, error) {
	payload, err := json.Marshal(marianRequest{
		Text:   req.Text,
		Source: req.SourceLanguage,
		Target: req.TargetLanguage,
		Model:  req.Model,
		Device: req.Device,
	})
	if err != nil {
		return nil, errors.Inference(req.Model, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Inference(req.Model, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, errors.ModelUnavailable(req.Model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Inference(req.Model,
			fmt.Errorf("marian error (status %d): %s", resp.StatusCode, string(body)))
	}

	var mr marianResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, errors.Inference(req.Model, err)
	}

	return &mt.Result{
		Text:           strings.TrimSpace(mr.Translation),
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	}, nil
}

// --- internal Marian API types ---

type marianRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
	Model  string `json:"model,omitempty"`
	Device string `json:"device,omitempty"`
}

type marianResponse struct {
	Translation string `json:"translation"`
}
