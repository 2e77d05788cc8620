package tts

import (
	"context"

	"github.com/kbukum/voicebridge/provider"
)

// Provider is the interface speech-synthesis backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Synthesize converts text to spoken audio.
	Synthesize(ctx context.Context, req Request) (*Result, error)
}

// NewRegistry creates a provider registry for speech-synthesis backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
