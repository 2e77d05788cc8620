package language

import (
	"testing"

	"github.com/kbukum/voicebridge/errors"
)

func defaultRegistry() *Registry {
	return NewRegistry(Defaults()...)
}

func TestResolveKnownLanguage(t *testing.T) {
	r := defaultRegistry()
	spec, err := r.Resolve("pt-BR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.DisplayName != "Portuguese (Brazil)" {
		t.Errorf("unexpected display name %q", spec.DisplayName)
	}
	if spec.Models.ASR == "" || spec.Models.Translation == "" || spec.Models.TTS == "" {
		t.Error("expected all model refs to be set")
	}
}

func TestResolveUnknownLanguage(t *testing.T) {
	r := defaultRegistry()
	_, err := r.Resolve("xx")
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeUnsupportedLanguage {
		t.Errorf("expected UNSUPPORTED_LANGUAGE, got %s", appErr.Code)
	}
}

func TestValidatePair(t *testing.T) {
	r := defaultRegistry()

	cases := []struct {
		name     string
		source   string
		target   string
		wantCode errors.ErrorCode
	}{
		{"valid pair", "pt-BR", "en", ""},
		{"valid reverse", "en", "pt-BR", ""},
		{"remote-capability pair", "es", "en", ""},
		{"identical pair", "en", "en", errors.ErrCodeIdenticalLanguagePair},
		{"unknown source", "xx", "en", errors.ErrCodeUnsupportedLanguage},
		{"unknown target", "en", "yy", errors.ErrCodeUnsupportedLanguage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.ValidatePair(tc.source, tc.target)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != tc.wantCode {
				t.Errorf("expected %s, got %s", tc.wantCode, appErr.Code)
			}
		})
	}
}

func TestAllValidDistinctPairsSucceed(t *testing.T) {
	r := defaultRegistry()
	specs := r.List()
	for _, src := range specs {
		for _, dst := range specs {
			err := r.ValidatePair(src.Code, dst.Code)
			if src.Code == dst.Code {
				if err == nil {
					t.Errorf("pair (%s,%s): expected identical-pair error", src.Code, dst.Code)
				}
			} else if err != nil {
				t.Errorf("pair (%s,%s): unexpected error %v", src.Code, dst.Code, err)
			}
		}
	}
}

func TestDefaultTranslationProvider(t *testing.T) {
	r := NewRegistry(Spec{Code: "fr", DisplayName: "French"})
	spec, err := r.Resolve("fr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.TranslationProvider != TranslationLocal {
		t.Errorf("expected local provider default, got %q", spec.TranslationProvider)
	}
}

func TestListSorted(t *testing.T) {
	r := defaultRegistry()
	specs := r.List()
	if len(specs) != 3 {
		t.Fatalf("expected 3 languages, got %d", len(specs))
	}
	for i := 1; i < len(specs); i++ {
		if specs[i-1].Code >= specs[i].Code {
			t.Errorf("expected sorted codes, got %v before %v", specs[i-1].Code, specs[i].Code)
		}
	}
}
