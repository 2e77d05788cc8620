package piper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/tts"
)

func testWAV(samples int) []byte {
	buf := &audio.Buffer{Samples: make([]float32, samples), SampleRate: 22050}
	for i := range buf.Samples {
		buf.Samples[i] = 0.25
	}
	return audio.EncodeWAV(buf)
}

func TestSynthesize(t *testing.T) {
	var got piperRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/synthesize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Write(testWAV(2205))
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	result, err := p.Synthesize(context.Background(), tts.Request{
		Text:     "hello world",
		Language: "en",
		Model:    "piper-en-US",
		Device:   "cpu",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "hello world" || got.Model != "piper-en-US" {
		t.Errorf("request not forwarded: %+v", got)
	}
	if result.Audio.SampleRate != 22050 {
		t.Errorf("expected native sample rate 22050, got %d", result.Audio.SampleRate)
	}
	if len(result.Audio.Samples) != 2205 {
		t.Errorf("expected 2205 samples, got %d", len(result.Audio.Samples))
	}
}

func TestSynthesizeBackendDown(t *testing.T) {
	p := NewProvider(Config{URL: "http://127.0.0.1:1"})
	_, err := p.Synthesize(context.Background(), tts.Request{Text: "x", Model: "m"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeModelUnavailable {
		t.Errorf("expected MODEL_UNAVAILABLE, got %s", appErr.Code)
	}
}

func TestSynthesizeBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "voice not found", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Synthesize(context.Background(), tts.Request{Text: "x", Model: "m"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeInferenceError {
		t.Errorf("expected INFERENCE_ERROR, got %s", appErr.Code)
	}
}

func TestSynthesizeBadAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a wav file"))
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Synthesize(context.Background(), tts.Request{Text: "x", Model: "m"})
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
		t.Error("expected provider to be available")
	}

	srv.Close()
	if p.IsAvailable(context.Background()) {
		t.Error("expected provider to be unavailable after shutdown")
	}
}
