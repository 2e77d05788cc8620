package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/voicebridge/asr"
	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/errors"
)

func testBuffer() *audio.Buffer {
	return &audio.Buffer{Samples: make([]float32, 1600), SampleRate: 16000}
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("language"); got != "pt" {
			t.Errorf("expected normalized language pt, got %q", got)
		}
		if got := r.FormValue("model"); got != "whisper-pt" {
			t.Errorf("expected model whisper-pt, got %q", got)
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("expected audio form file: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"text": " olá mundo ", "language": "pt"})
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	result, err := p.Transcribe(context.Background(), asr.Request{
		Audio:    testBuffer(),
		Language: "pt-BR",
		Model:    "whisper-pt",
		Device:   "cpu",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "olá mundo" {
		t.Errorf("expected trimmed text, got %q", result.Text)
	}
	if result.SourceLanguage != "pt-BR" {
		t.Errorf("expected source pt-BR, got %q", result.SourceLanguage)
	}
}

func TestTranscribeBackendDown(t *testing.T) {
	p := NewProvider(Config{URL: "http://127.0.0.1:1"})
	_, err := p.Transcribe(context.Background(), asr.Request{Audio: testBuffer(), Model: "m"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeModelUnavailable {
		t.Errorf("expected MODEL_UNAVAILABLE, got %s", appErr.Code)
	}
}

func TestTranscribeBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "cuda out of memory", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Transcribe(context.Background(), asr.Request{Audio: testBuffer(), Model: "m"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeInferenceError {
		t.Errorf("expected INFERENCE_ERROR, got %s", appErr.Code)
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected sidecar to report available")
	}

	down := NewProvider(Config{URL: "http://127.0.0.1:1"})
	if down.IsAvailable(context.Background()) {
		t.Error("expected unreachable sidecar to report unavailable")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{"pt-BR": "pt", "en": "en", "es": "es"}
	for in, want := range cases {
		if got := normalizeLanguage(in); got != want {
			t.Errorf("normalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
