// Package language maps language codes to the model capabilities that
// serve them and validates source/target pairs before any stage runs.
// Adding a language is a registry entry, not an orchestrator change.
package language

import (
	"sort"
	"sync"

	"github.com/kbukum/voicebridge/errors"
)

// Translation provider kinds selectable per language. Languages without a
// local translation model route through the remote provider.
const (
	TranslationLocal  = "marian"
	TranslationRemote = "openai"
)

// ModelRefs names the model identifier each stage uses for a language.
type ModelRefs struct {
	ASR         string `yaml:"asr" mapstructure:"asr"`
	Translation string `yaml:"translation" mapstructure:"translation"`
	TTS         string `yaml:"tts" mapstructure:"tts"`
}

// Spec describes one supported language. Specs are immutable after
// registration.
type Spec struct {
	// Code is the language identifier ("pt-BR", "en").
	Code string `yaml:"code" mapstructure:"code"`
	// DisplayName is the human-readable language name.
	DisplayName string `yaml:"display_name" mapstructure:"display_name"`
	// Models names the per-stage model identifiers.
	Models ModelRefs `yaml:"models" mapstructure:"models"`
	// TranslationProvider selects the translation capability variant
	// (TranslationLocal or TranslationRemote).
	TranslationProvider string `yaml:"translation_provider" mapstructure:"translation_provider"`
}

// Registry holds the supported language set, read-only after construction.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry creates a registry seeded with the given specs. Later specs
// with a duplicate code replace earlier ones.
func NewRegistry(specs ...Spec) *Registry {
	r := &Registry{specs: make(map[string]Spec, len(specs))}
	for _, s := range specs {
		if s.TranslationProvider == "" {
			s.TranslationProvider = TranslationLocal
		}
		r.specs[s.Code] = s
	}
	return r
}

// Defaults returns the language set shipped with voicebridge: Brazilian
// Portuguese and English with local models, Spanish through the remote
// translation capability.
func Defaults() []Spec {
	return []Spec{
		{
			Code:        "pt-BR",
			DisplayName: "Portuguese (Brazil)",
			Models: ModelRefs{
				ASR:         "whisper-pt",
				Translation: "marian-pt-en",
				TTS:         "piper-pt-BR",
			},
			TranslationProvider: TranslationLocal,
		},
		{
			Code:        "en",
			DisplayName: "English",
			Models: ModelRefs{
				ASR:         "whisper-en",
				Translation: "marian-en-pt",
				TTS:         "piper-en-US",
			},
			TranslationProvider: TranslationLocal,
		},
		{
			Code:        "es",
			DisplayName: "Spanish",
			Models: ModelRefs{
				ASR:         "whisper-es",
				Translation: "gpt-4o-mini",
				TTS:         "piper-es-ES",
			},
			TranslationProvider: TranslationRemote,
		},
	}
}

// Resolve returns the spec for a language code.
func (r *Registry) Resolve(code string) (Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[code]
	if !ok {
		return Spec{}, errors.UnsupportedLanguage(code)
	}
	return spec, nil
}

// ValidatePair checks that source and target both resolve and differ.
// Both codes are validated before any resource acquisition.
func (r *Registry) ValidatePair(source, target string) error {
	if _, err := r.Resolve(source); err != nil {
		return err
	}
	if _, err := r.Resolve(target); err != nil {
		return err
	}
	if source == target {
		return errors.IdenticalLanguagePair(source)
	}
	return nil
}

// List returns all registered specs sorted by code.
func (r *Registry) List() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
