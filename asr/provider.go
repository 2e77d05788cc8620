package asr

import (
	"context"

	"github.com/kbukum/voicebridge/provider"
)

// Provider is the interface speech-recognition backends must implement.
// Providers are stateless to callers; any model loading happens inside
// the factory and is memoized by the registry.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe converts captured audio to text.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// NewRegistry creates a provider registry for speech-recognition backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
