// Package openai implements mt.Provider against the OpenAI chat API.
// It is the remote translation capability for languages that have no
// local MarianMT model.
package openai

import (
	"context"
	"fmt"
	"strings"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/mt"
	"github.com/kbukum/voicebridge/provider"
)

const (
	// ProviderName is the registered name for the OpenAI provider.
	ProviderName = "openai"

	defaultModel = gopenai.GPT4oMini
)

// Config holds configuration for the OpenAI translation provider.
type Config struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Model  string `yaml:"model" mapstructure:"model"`
}

// chatClient is the slice of the go-openai client the provider uses,
// extracted so tests can stub completions.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req gopenai.ChatCompletionRequest) (gopenai.ChatCompletionResponse, error)
}

// Provider implements mt.Provider using the OpenAI chat completion API.
type Provider struct {
	cfg    Config
	client chatClient
}

// NewProvider creates a new OpenAI translation provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.ModelUnavailable(ProviderName, fmt.Errorf("api key not configured"))
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Provider{
		cfg:    cfg,
		client: gopenai.NewClient(cfg.APIKey),
	}, nil
}

// Factory returns a provider.Factory that creates OpenAI providers from
// a generic config map.
func Factory() provider.Factory[mt.Provider] {
	return func(cfg map[string]any) (mt.Provider, error) {
		oc := Config{}
		if v, ok := cfg["api_key"].(string); ok {
			oc.APIKey = v
		}
		if v, ok := cfg["model"].(string); ok {
			oc.Model = v
		}
		return NewProvider(oc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider is configured. The API itself
// is only contacted on Translate.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// Translate asks the chat model for a translation and returns the bare
// translated text.
func (p *Provider) Translate(ctx context.Context, req mt.Request) (*mt.Result, error) {
	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}

	resp, err := p.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model: model,
		Messages: []gopenai.ChatCompletionMessage{
			{
				Role: gopenai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"You are a translation engine. Translate the user's text from %s to %s. Reply with the translation only.",
					req.SourceLanguage, req.TargetLanguage),
			},
			{
				Role:    gopenai.ChatMessageRoleUser,
				Content: req.Text,
			},
		},
	})
	if err != nil {
		return nil, errors.ModelUnavailable(model, err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.Inference(model, fmt.Errorf("empty completion"))
	}

	return &mt.Result{
		Text:           strings.TrimSpace(resp.Choices[0].Message.Content),
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	}, nil
}
