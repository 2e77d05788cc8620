package provider

import "context"

// Provider is the base interface all stage providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration. Factories are
// where model loading happens, so the Registry calls each one at most
// once per name.
type Factory[T Provider] func(cfg map[string]any) (T, error)
