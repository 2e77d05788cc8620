package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/language"
	"github.com/kbukum/voicebridge/pipeline"
	"github.com/kbukum/voicebridge/sink"
)

type stubRunner struct {
	outcome pipeline.Outcome
	last    pipeline.Request
	calls   int
}

func (s *stubRunner) Run(_ context.Context, req pipeline.Request) pipeline.Outcome {
	s.calls++
	s.last = req
	return s.outcome
}

func testEngine(t *testing.T, runner Runner, store *sink.MemorySink, checks ...NamedCheck) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	if store == nil {
		store = sink.NewMemorySink()
	}
	api := NewAPI(runner, language.NewRegistry(language.Defaults()...), store, "test", checks...)
	api.Register(engine)
	return engine
}

func wavPayload(t *testing.T) string {
	t.Helper()
	buf := &audio.Buffer{Samples: make([]float32, 1600), SampleRate: 16000}
	for i := range buf.Samples {
		buf.Samples[i] = 0.1
	}
	return base64.StdEncoding.EncodeToString(audio.EncodeWAV(buf))
}

func postTranslate(t *testing.T, engine *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/translate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTranslateSuccess(t *testing.T) {
	runner := &stubRunner{outcome: pipeline.Succeed(&pipeline.Result{
		SourceText:     "ola mundo",
		TranslatedText: "hello world",
		Destination:    "abc-123",
		Device:         "cpu",
	})}
	engine := testEngine(t, runner, nil)

	w := postTranslate(t, engine, TranslateRequest{
		Source: "pt-BR",
		Target: "en",
		Audio:  wavPayload(t),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp TranslateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AudioID != "abc-123" || resp.TranslatedText != "hello world" {
		t.Errorf("unexpected response %+v", resp)
	}
	if runner.last.Input.Buffer == nil {
		t.Error("expected decoded buffer passed to runner")
	}
}

func TestTranslateIdenticalPairRejectedBeforeRun(t *testing.T) {
	runner := &stubRunner{}
	engine := testEngine(t, runner, nil)

	w := postTranslate(t, engine, TranslateRequest{
		Source: "en",
		Target: "en",
		Audio:  wavPayload(t),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if runner.calls != 0 {
		t.Error("pipeline must not run for an invalid pair")
	}

	var resp errors.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Error.Code != errors.ErrCodeIdenticalLanguagePair {
		t.Errorf("expected IDENTICAL_LANGUAGE_PAIR, got %s", resp.Error.Code)
	}
}

func TestTranslateUnsupportedLanguage(t *testing.T) {
	runner := &stubRunner{}
	engine := testEngine(t, runner, nil)

	w := postTranslate(t, engine, TranslateRequest{
		Source: "fr",
		Target: "en",
		Audio:  wavPayload(t),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp errors.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != errors.ErrCodeUnsupportedLanguage {
		t.Errorf("expected UNSUPPORTED_LANGUAGE, got %s", resp.Error.Code)
	}
}

func TestTranslateMissingFields(t *testing.T) {
	runner := &stubRunner{}
	engine := testEngine(t, runner, nil)

	w := postTranslate(t, engine, map[string]string{"source": "pt-BR"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if runner.calls != 0 {
		t.Error("pipeline must not run for an incomplete request")
	}
}

func TestTranslateBadBase64(t *testing.T) {
	engine := testEngine(t, &stubRunner{}, nil)

	w := postTranslate(t, engine, TranslateRequest{
		Source: "pt-BR",
		Target: "en",
		Audio:  "not base64!!!",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTranslatePipelineFailureMapsToStatus(t *testing.T) {
	runner := &stubRunner{outcome: pipeline.Fail(
		pipeline.StageTranscribe,
		errors.ModelUnavailable("whisper-pt", nil),
	)}
	engine := testEngine(t, runner, nil)

	w := postTranslate(t, engine, TranslateRequest{
		Source: "pt-BR",
		Target: "en",
		Audio:  wavPayload(t),
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var resp errors.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != errors.ErrCodeModelUnavailable {
		t.Errorf("expected MODEL_UNAVAILABLE, got %s", resp.Error.Code)
	}
	if !resp.Error.Retryable {
		t.Error("expected retryable flag in response")
	}
}

func TestLanguagesEndpoint(t *testing.T) {
	engine := testEngine(t, &stubRunner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Languages []languageInfo `json:"languages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Languages) != 3 {
		t.Errorf("expected 3 languages, got %d", len(resp.Languages))
	}
	if resp.Languages[0].Code != "en" {
		t.Errorf("expected sorted codes, got %+v", resp.Languages)
	}
}

func TestAudioEndpoint(t *testing.T) {
	store := sink.NewMemorySink()
	buf := &audio.Buffer{Samples: make([]float32, 160), SampleRate: 16000}
	id, err := store.Emit(context.Background(), buf)
	if err != nil {
		t.Fatalf("storing audio: %v", err)
	}
	engine := testEngine(t, &stubRunner{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/audio/"+id, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("expected audio/wav, got %s", ct)
	}
	if _, err := audio.DecodeWAV(w.Body.Bytes()); err != nil {
		t.Errorf("response is not valid WAV: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/audio/missing", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine := testEngine(t, &stubRunner{}, nil,
		NamedCheck{Name: "whisper", Check: func(context.Context) bool { return true }},
		NamedCheck{Name: "marian", Check: func(context.Context) bool { return false }},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Status     string `json:"status"`
		Components []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding health: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("expected degraded, got %s", resp.Status)
	}
	if len(resp.Components) != 2 {
		t.Errorf("expected 2 components, got %d", len(resp.Components))
	}
}
