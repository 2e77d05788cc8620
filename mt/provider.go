package mt

import (
	"context"

	"github.com/kbukum/voicebridge/provider"
)

// Provider is the interface translation backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Translate converts text to the target language.
	Translate(ctx context.Context, req Request) (*Result, error)
}

// NewRegistry creates a provider registry for translation backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
