// Package piper implements tts.Provider against a Piper HTTP sidecar.
// The sidecar returns synthesized speech as a WAV stream.
package piper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/provider"
	"github.com/kbukum/voicebridge/tts"
)

const (
	// ProviderName is the registered name for the Piper provider.
	ProviderName = "piper"

	defaultURL     = "http://localhost:8389"
	defaultTimeout = 60 * time.Second
)

// Config holds configuration for the Piper synthesis provider.
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

// Provider implements tts.Provider using a Piper HTTP sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Piper synthesis provider.
func NewProvider(cfg Config) *Provider {
	cfg.ApplyDefaults()
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Factory returns a provider.Factory that creates Piper providers from
// a generic config map.
func Factory() provider.Factory[tts.Provider] {
	return func(cfg map[string]any) (tts.Provider, error) {
		pc := Config{}
		if v, ok := cfg["url"].(string); ok {
			pc.URL = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			pc.Timeout = v
		}
		return NewProvider(pc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Piper sidecar is reachable.
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

// Synthesize sends text to the sidecar and decodes the WAV response.
func (p *Provider) Synthesize(ctx context.Context, req tts.Request) (*tts.Result, error) {
	payload, err := json.Marshal(piperRequest{
		Text:     req.Text,
		Language: req.Language,
		Model:    req.Model,
		Device:   req.Device,
	})
	if err != nil {
		return nil, errors.Inference(req.Model, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL+"/synthesize", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Inference(req.Model, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/wav")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, errors.ModelUnavailable(req.Model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Inference(req.Model,
			fmt.Errorf("piper error (status %d): %s", resp.StatusCode, string(body)))
	}

	wav, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Inference(req.Model, err)
	}
	buf, err := audio.DecodeWAV(wav)
	if err != nil {
		return nil, errors.Inference(req.Model, fmt.Errorf("decoding piper output: %w", err))
	}
	if buf.Empty() {
		return nil, errors.Inference(req.Model, fmt.Errorf("piper returned no audio"))
	}

	return &tts.Result{
		Audio:    buf,
		Language: req.Language,
	}, nil
}

// --- internal Piper API types ---

type piperRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Model    string `json:"model,omitempty"`
	Device   string `json:"device,omitempty"`
}
