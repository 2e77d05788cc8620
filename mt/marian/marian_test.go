package marian

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/mt"
)

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req marianRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Source != "pt-BR" || req.Target != "en" {
			t.Errorf("unexpected pair %s->%s", req.Source, req.Target)
		}
		if req.Text != "olá mundo" {
			t.Errorf("unexpected text %q", req.Text)
		}
		json.NewEncoder(w).Encode(marianResponse{Translation: " hello world "})
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	result, err := p.Translate(context.Background(), mt.Request{
		Text:           "olá mundo",
		SourceLanguage: "pt-BR",
		TargetLanguage: "en",
		Model:          "marian-pt-en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "hello world" {
		t.Errorf("expected trimmed translation, got %q", result.Text)
	}
	if result.SourceLanguage != "pt-BR" || result.TargetLanguage != "en" {
		t.Errorf("expected codes echoed, got %s->%s", result.SourceLanguage, result.TargetLanguage)
	}
}

func TestTranslateBackendDown(t *testing.T) {
	p := NewProvider(Config{URL: "http://127.0.0.1:1"})
	_, err := p.Translate(context.Background(), mt.Request{Text: "x", Model: "m"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeModelUnavailable {
		t.Errorf("expected MODEL_UNAVAILABLE, got %s", appErr.Code)
	}
}

func TestTranslateBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unknown language pair", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Translate(context.Background(), mt.Request{Text: "x", Model: "m"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeInferenceError {
		t.Errorf("expected INFERENCE_ERROR, got %s", appErr.Code)
	}
}
