package server

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/device"
	apperrors "github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/language"
	"github.com/kbukum/voicebridge/observability"
	"github.com/kbukum/voicebridge/pipeline"
	"github.com/kbukum/voicebridge/sink"
	"github.com/kbukum/voicebridge/validation"
)

// Runner executes translation runs; satisfied by *pipeline.Orchestrator.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) pipeline.Outcome
}

// NamedCheck probes one model backend for the health endpoint.
type NamedCheck struct {
	Name  string
	Check func(ctx context.Context) bool
}

// API holds the handlers for the translation endpoints.
type API struct {
	runner     Runner
	languages  *language.Registry
	audio      *sink.MemorySink
	checks     []NamedCheck
	version    string
	sampleRate int
}

// NewAPI creates the API over a runner and its language registry. The
// memory sink must be the sink the runner emits to.
func NewAPI(runner Runner, languages *language.Registry, audioStore *sink.MemorySink, version string, checks ...NamedCheck) *API {
	return &API{
		runner:     runner,
		languages:  languages,
		audio:      audioStore,
		checks:     checks,
		version:    version,
		sampleRate: audio.DefaultSampleRate,
	}
}

// Register mounts all API routes on the engine.
func (a *API) Register(engine *gin.Engine) {
	api := engine.Group("/api")
	api.GET("/health", a.handleHealth)
	api.GET("/languages", a.handleLanguages)
	api.POST("/translate", a.handleTranslate)
	api.GET("/audio/:id", a.handleAudio)
}

func (a *API) handleHealth(c *gin.Context) {
	health := observability.NewServiceHealth("voicebridge", a.version)
	for _, check := range a.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		status := observability.HealthStatusDown
		if check.Check(ctx) {
			status = observability.HealthStatusUp
		}
		cancel()
		health.AddComponent(observability.Health{Name: check.Name, Status: status})
	}
	RespondOK(c, health)
}

// languageInfo is the per-language payload of GET /api/languages.
type languageInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (a *API) handleLanguages(c *gin.Context) {
	specs := a.languages.List()
	out := make([]languageInfo, 0, len(specs))
	for _, s := range specs {
		out = append(out, languageInfo{Code: s.Code, Name: s.DisplayName})
	}
	RespondOK(c, gin.H{"languages": out})
}

// TranslateRequest is the payload of POST /api/translate. Audio arrives
// base64-encoded; non-WAV uploads are transcoded.
type TranslateRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
	Audio  string `json:"audio" validate:"required"`
	Device string `json:"device" validate:"omitempty,oneof=auto cpu gpu"`
}

// TranslateResponse is the success payload of POST /api/translate.
type TranslateResponse struct {
	SourceText     string           `json:"source_text"`
	TranslatedText string           `json:"translated_text"`
	AudioID        string           `json:"audio_id"`
	Device         string           `json:"device"`
	Timings        pipeline.Timings `json:"timings"`
}

func (a *API) handleTranslate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidRequest("request body must be valid JSON").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	// The language pair is rejected before the audio payload is decoded.
	if err := a.languages.ValidatePair(req.Source, req.Target); err != nil {
		RespondWithError(c, err)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		RespondWithError(c, apperrors.InvalidRequest("audio must be valid base64").WithCause(err))
		return
	}

	buf, err := a.decodeAudio(c.Request.Context(), raw)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	outcome := a.runner.Run(c.Request.Context(), pipeline.Request{
		Source:    req.Source,
		Target:    req.Target,
		Input:     pipeline.AudioInput{Buffer: buf},
		Device:    devicePreference(req.Device),
		RequestID: c.GetString("request_id"),
	})
	if !outcome.OK() {
		failure := outcome.Failure()
		RespondWithError(c, failure.Err)
		return
	}

	result := outcome.Result()
	RespondOK(c, TranslateResponse{
		SourceText:     result.SourceText,
		TranslatedText: result.TranslatedText,
		AudioID:        result.Destination,
		Device:         result.Device,
		Timings:        result.Timings,
	})
}

func (a *API) handleAudio(c *gin.Context) {
	id := c.Param("id")
	data, ok := a.audio.Get(id)
	if !ok {
		appErr := apperrors.New(apperrors.ErrCodeInvalidRequest, "No audio found for this id.", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.Data(http.StatusOK, "audio/wav", data)
}

func devicePreference(s string) device.Preference {
	if s == "" {
		return device.Auto
	}
	return device.Preference(s)
}

// decodeAudio turns an uploaded payload into a buffer: WAV decodes
// natively, anything else goes through ffmpeg.
func (a *API) decodeAudio(ctx context.Context, raw []byte) (*audio.Buffer, error) {
	if len(raw) == 0 {
		return nil, apperrors.EmptyInput("upload")
	}
	if buf, err := audio.DecodeWAV(raw); err == nil {
		return audio.Resample(buf, a.sampleRate), nil
	}
	buf, err := audio.Transcode(ctx, raw, a.sampleRate)
	if err != nil {
		return nil, apperrors.InvalidRequest("audio payload could not be decoded").WithCause(err)
	}
	return buf, nil
}
