package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/voicebridge/asr"
	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/device"
	vberrors "github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/language"
	"github.com/kbukum/voicebridge/logger"
	"github.com/kbukum/voicebridge/mt"
	"github.com/kbukum/voicebridge/observability"
	"github.com/kbukum/voicebridge/provider"
	"github.com/kbukum/voicebridge/sink"
	"github.com/kbukum/voicebridge/tts"
)

// Backends bundles the stage provider registries and the per-model
// factory configuration. Registries memoize loads: the first run that
// needs a model pays its load cost, later runs reuse the instance.
type Backends struct {
	ASR         *provider.Registry[asr.Provider]
	Translation *provider.Registry[mt.Provider]
	Synthesis   *provider.Registry[tts.Provider]

	// Configs maps a model identifier to the config its factory
	// receives on first acquisition.
	Configs map[string]map[string]any
}

func (b *Backends) configFor(model string) map[string]any {
	if b.Configs == nil {
		return nil
	}
	return b.Configs[model]
}

// MicOpener opens a live audio source for recording runs.
type MicOpener func(sampleRate, frameSize int) (audio.Source, error)

// Orchestrator executes translation runs stage by stage.
type Orchestrator struct {
	languages *language.Registry
	devices   *device.Selector
	capture   *audio.CaptureUnit
	backends  Backends
	sink      sink.Sink
	metrics   *observability.PipelineMetrics
	openMic   MicOpener
	log       *logger.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics attaches pipeline metric instruments.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithMicOpener replaces the default microphone source.
func WithMicOpener(open MicOpener) Option {
	return func(o *Orchestrator) { o.openMic = open }
}

// NewOrchestrator creates an orchestrator over the given components.
func NewOrchestrator(
	languages *language.Registry,
	devices *device.Selector,
	capture *audio.CaptureUnit,
	backends Backends,
	out sink.Sink,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		languages: languages,
		devices:   devices,
		capture:   capture,
		backends:  backends,
		sink:      out,
		log:       logger.Get("pipeline"),
		openMic: func(sampleRate, frameSize int) (audio.Source, error) {
			return audio.NewMicrophone(sampleRate, frameSize)
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Languages returns the language registry backing this orchestrator.
func (o *Orchestrator) Languages() *language.Registry { return o.languages }

// Run executes one translation run. It always returns a terminal
// Outcome; no error, panic, or partial state crosses this boundary.
func (o *Orchestrator) Run(ctx context.Context, req Request) (outcome Outcome) {
	start := time.Now()
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	log := o.log.WithFields(map[string]interface{}{
		logger.FieldRequestID: req.RequestID,
		logger.FieldSource:    req.Source,
		logger.FieldTarget:    req.Target,
	})

	if o.metrics != nil {
		o.metrics.RecordRunStart(ctx)
		defer func() {
			status := "failure"
			if outcome.OK() {
				status = "success"
			}
			o.metrics.RecordRunEnd(ctx, req.Source, req.Target, status, time.Since(start))
		}()
	}

	stage := StageValidate
	defer func() {
		if r := recover(); r != nil {
			appErr := vberrors.Internal(fmt.Errorf("panic in %s stage: %v", stage, r))
			log.Error("pipeline panic", logger.Fields(
				logger.FieldStage, string(stage),
				logger.FieldError, appErr.Error(),
			))
			outcome = Fail(stage, appErr)
		}
	}()

	// Validation happens before any capture, model load, or device
	// acquisition.
	if err := o.languages.ValidatePair(req.Source, req.Target); err != nil {
		return o.fail(ctx, log, StageValidate, err)
	}
	srcSpec, _ := o.languages.Resolve(req.Source)
	tgtSpec, _ := o.languages.Resolve(req.Target)

	pref := req.Device
	if pref == "" {
		pref = device.Auto
	}
	dev, err := o.devices.Resolve(ctx, pref)
	if err != nil {
		return o.fail(ctx, log, StageValidate, err)
	}
	log = log.WithFields(map[string]interface{}{logger.FieldDevice: string(dev)})

	var timings Timings

	stage = StageCapture
	stepStart := time.Now()
	buf, err := o.acquireAudio(ctx, req.Input)
	if err != nil {
		return o.fail(ctx, log, StageCapture, err)
	}
	timings.Capture = time.Since(stepStart)
	o.observeStage(ctx, log, StageCapture, timings.Capture,
		logger.Fields("seconds", buf.Seconds()))

	stage = StageTranscribe
	stepStart = time.Now()
	asrProv, err := o.backends.ASR.Acquire(srcSpec.Models.ASR, o.backends.configFor(srcSpec.Models.ASR))
	if err != nil {
		return o.fail(ctx, log, StageTranscribe, acquireError(srcSpec.Models.ASR, err))
	}
	asrRes, err := asrProv.Transcribe(ctx, asr.Request{
		Audio:    audio.Resample(buf, asr.ExpectedSampleRate),
		Language: req.Source,
		Model:    srcSpec.Models.ASR,
		Device:   string(dev),
	})
	if err != nil {
		return o.fail(ctx, log, StageTranscribe, err)
	}
	if strings.TrimSpace(asrRes.Text) == "" {
		return o.fail(ctx, log, StageTranscribe, vberrors.EmptyInput("transcription"))
	}
	timings.Transcribe = time.Since(stepStart)
	o.observeStage(ctx, log, StageTranscribe, timings.Transcribe,
		logger.Fields(logger.FieldModel, srcSpec.Models.ASR))

	stage = StageTranslate
	stepStart = time.Now()
	mtModel := translationModel(srcSpec, tgtSpec)
	mtProv, err := o.backends.Translation.Acquire(mtModel, o.backends.configFor(mtModel))
	if err != nil {
		return o.fail(ctx, log, StageTranslate, acquireError(mtModel, err))
	}
	mtRes, err := mtProv.Translate(ctx, mt.Request{
		Text:           asrRes.Text,
		SourceLanguage: req.Source,
		TargetLanguage: req.Target,
		Model:          mtModel,
		Device:         string(dev),
	})
	if err != nil {
		return o.fail(ctx, log, StageTranslate, err)
	}
	timings.Translate = time.Since(stepStart)
	o.observeStage(ctx, log, StageTranslate, timings.Translate,
		logger.Fields(logger.FieldModel, mtModel))

	stage = StageSynthesize
	stepStart = time.Now()
	ttsProv, err := o.backends.Synthesis.Acquire(tgtSpec.Models.TTS, o.backends.configFor(tgtSpec.Models.TTS))
	if err != nil {
		return o.fail(ctx, log, StageSynthesize, acquireError(tgtSpec.Models.TTS, err))
	}
	ttsRes, err := ttsProv.Synthesize(ctx, tts.Request{
		Text:     mtRes.Text,
		Language: req.Target,
		Model:    tgtSpec.Models.TTS,
		Device:   string(dev),
	})
	if err != nil {
		return o.fail(ctx, log, StageSynthesize, err)
	}
	timings.Synthesize = time.Since(stepStart)
	o.observeStage(ctx, log, StageSynthesize, timings.Synthesize,
		logger.Fields(logger.FieldModel, tgtSpec.Models.TTS))

	stage = StageEmit
	stepStart = time.Now()
	dest, err := o.sink.Emit(ctx, ttsRes.Audio)
	if err != nil {
		return o.fail(ctx, log, StageEmit, err)
	}
	timings.Emit = time.Since(stepStart)
	o.observeStage(ctx, log, StageEmit, timings.Emit, nil)

	timings.Total = time.Since(start)
	log.Info("run complete", logger.Fields(
		logger.FieldDuration, timings.Total.Milliseconds(),
		"destination", dest,
	))

	return Succeed(&Result{
		SourceText:     asrRes.Text,
		TranslatedText: mtRes.Text,
		Destination:    dest,
		Device:         string(dev),
		Timings:        timings,
	})
}

// acquireAudio resolves the run's input audio per the request mode.
func (o *Orchestrator) acquireAudio(ctx context.Context, in AudioInput) (*audio.Buffer, error) {
	switch {
	case in.Path != "":
		return audio.LoadFile(ctx, in.Path, o.capture.Config().SampleRate)
	case in.Buffer != nil:
		if in.Buffer.Empty() {
			return nil, vberrors.EmptyInput("buffer")
		}
		return in.Buffer, nil
	case in.Record != nil:
		cfg := o.capture.Config()
		src, err := o.openMic(cfg.SampleRate, cfg.FrameSize)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		if in.Record.UntilSilence {
			return o.capture.UntilSilence(ctx, src)
		}
		return o.capture.Fixed(ctx, src, in.Record.Duration)
	default:
		return nil, vberrors.EmptyInput("request")
	}
}

func (o *Orchestrator) fail(ctx context.Context, log *logger.Logger, stage Stage, err error) Outcome {
	appErr := vberrors.Wrap(err)
	log.Error("stage failed", logger.Fields(
		logger.FieldStage, string(stage),
		"code", string(appErr.Code),
		logger.FieldError, appErr.Error(),
	))
	if o.metrics != nil {
		o.metrics.RecordFailure(ctx, string(stage), string(appErr.Code))
	}
	return Fail(stage, appErr)
}

func (o *Orchestrator) observeStage(ctx context.Context, log *logger.Logger, stage Stage, d time.Duration, extra map[string]interface{}) {
	fields := logger.Fields(
		logger.FieldStage, string(stage),
		logger.FieldDuration, d.Milliseconds(),
	)
	for k, v := range extra {
		fields[k] = v
	}
	log.Debug("stage complete", fields)
	if o.metrics != nil {
		o.metrics.RecordStage(ctx, string(stage), d)
	}
}

// translationModel picks the translation model for a pair. A pair that
// touches a remote-translated language routes through that language's
// remote model; otherwise the source language's local model carries the
// direction.
func translationModel(src, tgt language.Spec) string {
	if tgt.TranslationProvider == language.TranslationRemote {
		return tgt.Models.Translation
	}
	if src.TranslationProvider == language.TranslationRemote {
		return src.Models.Translation
	}
	return src.Models.Translation
}

// acquireError classifies a registry acquisition failure.
func acquireError(model string, err error) error {
	if vberrors.IsAppError(err) {
		return err
	}
	return vberrors.ModelUnavailable(model, err)
}
