package bootstrap

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/voicebridge/asr"
	"github.com/kbukum/voicebridge/asr/whisper"
	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/config"
	"github.com/kbukum/voicebridge/device"
	"github.com/kbukum/voicebridge/language"
	"github.com/kbukum/voicebridge/logger"
	"github.com/kbukum/voicebridge/mt"
	"github.com/kbukum/voicebridge/mt/marian"
	"github.com/kbukum/voicebridge/mt/openai"
	"github.com/kbukum/voicebridge/observability"
	"github.com/kbukum/voicebridge/pipeline"
	"github.com/kbukum/voicebridge/server"
	"github.com/kbukum/voicebridge/sink"
	"github.com/kbukum/voicebridge/tts"
	"github.com/kbukum/voicebridge/tts/piper"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// App bundles the assembled application components.
type App struct {
	Cfg          *config.Config
	Languages    *language.Registry
	Orchestrator *pipeline.Orchestrator

	meter *sdkmetric.MeterProvider
}

// New assembles an application from configuration: logger, optional
// metrics, language registry, stage provider registries, and the
// orchestrator emitting to out.
func New(ctx context.Context, cfg *config.Config, out sink.Sink) (*App, error) {
	logger.Init(cfg.Logging, cfg.Name)
	logger.RegisterDefaults("pipeline", "capture", "device", "server", "sink")

	app := &App{Cfg: cfg}

	var opts []pipeline.Option
	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Metrics.Endpoint,
			Insecure:       true,
			Interval:       cfg.Metrics.Interval,
		})
		if err != nil {
			return nil, err
		}
		app.meter = mp

		metrics, err := observability.NewPipelineMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithMetrics(metrics))
	}

	app.Languages = language.NewRegistry(language.Defaults()...)
	backends := buildBackends(cfg, app.Languages)

	app.Orchestrator = pipeline.NewOrchestrator(
		app.Languages,
		device.NewSelector(nil),
		audio.NewCaptureUnit(cfg.Capture),
		backends,
		out,
		opts...,
	)
	return app, nil
}

// Shutdown flushes metrics and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	if a.meter != nil {
		return a.meter.Shutdown(ctx)
	}
	return nil
}

// HealthChecks returns sidecar probes for the web API health endpoint.
func (a *App) HealthChecks() []server.NamedCheck {
	checks := []server.NamedCheck{
		{Name: "whisper", Check: whisper.NewProvider(a.Cfg.Whisper).IsAvailable},
		{Name: "marian", Check: marian.NewProvider(a.Cfg.Marian).IsAvailable},
		{Name: "piper", Check: piper.NewProvider(a.Cfg.Piper).IsAvailable},
	}
	if remote, err := openai.NewProvider(a.Cfg.OpenAI); err == nil {
		checks = append(checks, server.NamedCheck{Name: "openai", Check: remote.IsAvailable})
	}
	return checks
}

// buildBackends registers a factory per model identifier from the
// language registry, so the provider registries memoize one load per
// model, not per provider kind.
func buildBackends(cfg *config.Config, langs *language.Registry) pipeline.Backends {
	backends := pipeline.Backends{
		ASR:         asr.NewRegistry(),
		Translation: mt.NewRegistry(),
		Synthesis:   tts.NewRegistry(),
		Configs:     make(map[string]map[string]any),
	}

	for _, spec := range langs.List() {
		backends.ASR.RegisterFactory(spec.Models.ASR, whisper.Factory())
		backends.Configs[spec.Models.ASR] = map[string]any{
			"url":     cfg.Whisper.URL,
			"model":   spec.Models.ASR,
			"timeout": cfg.Whisper.Timeout,
		}

		switch spec.TranslationProvider {
		case language.TranslationRemote:
			backends.Translation.RegisterFactory(spec.Models.Translation, openai.Factory())
			backends.Configs[spec.Models.Translation] = map[string]any{
				"api_key": cfg.OpenAI.APIKey,
				"model":   spec.Models.Translation,
			}
		default:
			backends.Translation.RegisterFactory(spec.Models.Translation, marian.Factory())
			backends.Configs[spec.Models.Translation] = map[string]any{
				"url":     cfg.Marian.URL,
				"timeout": cfg.Marian.Timeout,
			}
		}

		backends.Synthesis.RegisterFactory(spec.Models.TTS, piper.Factory())
		backends.Configs[spec.Models.TTS] = map[string]any{
			"url":     cfg.Piper.URL,
			"timeout": cfg.Piper.Timeout,
		}
	}
	return backends
}
