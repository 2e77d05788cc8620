package audio

import (
	"context"
	"errors"
	"io"
	"time"

	vberrors "github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/logger"
)

// CaptureConfig holds the capture unit tunables. The silence threshold
// and debounce window are configuration, not constants; defaults follow
// ApplyDefaults.
type CaptureConfig struct {
	// SampleRate is the capture rate in Hz.
	SampleRate int `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gt=0"`
	// FrameSize is the number of samples per frame read from the source.
	FrameSize int `yaml:"frame_size" mapstructure:"frame_size" validate:"gt=0"`
	// SilenceThreshold is the mean absolute amplitude below which a frame
	// counts as silent.
	SilenceThreshold float64 `yaml:"silence_threshold" mapstructure:"silence_threshold" validate:"gt=0,lt=1"`
	// DebounceFrames is how many consecutive silent frames confirm silence.
	DebounceFrames int `yaml:"debounce_frames" mapstructure:"debounce_frames" validate:"gte=1"`
	// MaxDuration is the absolute cap on until-silence recording. It
	// always fires, regardless of audio-device behavior.
	MaxDuration time.Duration `yaml:"max_duration" mapstructure:"max_duration" validate:"gt=0"`
}

// ApplyDefaults applies default values to capture configuration.
func (c *CaptureConfig) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.FrameSize == 0 {
		c.FrameSize = 1024
	}
	if c.SilenceThreshold == 0 {
		c.SilenceThreshold = 0.01
	}
	if c.DebounceFrames == 0 {
		c.DebounceFrames = 10
	}
	if c.MaxDuration == 0 {
		c.MaxDuration = 30 * time.Second
	}
}

// CaptureUnit acquires bounded or silence-terminated audio from a Source.
type CaptureUnit struct {
	cfg CaptureConfig
	log *logger.Logger
}

// NewCaptureUnit creates a capture unit with the given configuration.
func NewCaptureUnit(cfg CaptureConfig) *CaptureUnit {
	cfg.ApplyDefaults()
	return &CaptureUnit{cfg: cfg, log: logger.Get("capture")}
}

// Config returns the unit's effective configuration.
func (u *CaptureUnit) Config() CaptureConfig { return u.cfg }

// Fixed records for exactly the given duration and always returns a
// buffer of that length, silence-padded if the source underruns.
func (u *CaptureUnit) Fixed(ctx context.Context, src Source, duration time.Duration) (*Buffer, error) {
	want := int(duration.Seconds() * float64(src.SampleRate()))
	if want <= 0 {
		return nil, vberrors.EmptyInput("fixed-duration capture")
	}

	samples := make([]float32, 0, want)
	for len(samples) < want {
		frame, err := src.ReadFrame(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if len(samples) == 0 {
				return nil, vberrors.CaptureTimeout(duration.Seconds())
			}
			break
		}
		if err != nil {
			return nil, vberrors.DeviceUnavailable("audio source", err)
		}
		samples = append(samples, frame...)
	}

	// Pad underrun, truncate frame-quantization overshoot.
	if len(samples) < want {
		samples = append(samples, make([]float32, want-len(samples))...)
	}
	samples = samples[:want]

	u.log.Debug("fixed capture complete", logger.Fields("seconds", duration.Seconds()))
	return &Buffer{Samples: samples, SampleRate: src.SampleRate()}, nil
}

// UntilSilence streams frames and stops once the rolling energy measure
// stays below the threshold for the debounce window. MaxDuration is a
// hard cap that always fires; reaching it with audio in hand is not an
// error. Trailing silence beyond the debounce window is trimmed.
func (u *CaptureUnit) UntilSilence(ctx context.Context, src Source) (*Buffer, error) {
	rate := src.SampleRate()
	maxFrames := int(u.cfg.MaxDuration.Seconds() * float64(rate) / float64(u.cfg.FrameSize))
	if maxFrames < 1 {
		maxFrames = 1
	}

	ctx, cancel := context.WithTimeout(ctx, u.cfg.MaxDuration)
	defer cancel()

	var (
		frames     [][]float32
		silentRun  int
		stoppedOn  string
	)

capture:
	for len(frames) < maxFrames {
		frame, err := src.ReadFrame(ctx)
		switch {
		case errors.Is(err, io.EOF):
			stoppedOn = "eof"
			break capture
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			stoppedOn = "deadline"
			break capture
		case err != nil:
			return nil, vberrors.DeviceUnavailable("audio source", err)
		}

		frames = append(frames, frame)
		if meanAbs(frame) < u.cfg.SilenceThreshold {
			silentRun++
			if silentRun >= u.cfg.DebounceFrames {
				stoppedOn = "silence"
				break capture
			}
		} else {
			silentRun = 0
		}
	}
	if stoppedOn == "" {
		stoppedOn = "max-duration"
	}

	// Keep at most the debounce window of trailing silence.
	if silentRun > u.cfg.DebounceFrames {
		frames = frames[:len(frames)-(silentRun-u.cfg.DebounceFrames)]
	}

	if len(frames) == 0 {
		if stoppedOn == "deadline" || stoppedOn == "max-duration" {
			return nil, vberrors.CaptureTimeout(u.cfg.MaxDuration.Seconds())
		}
		return nil, vberrors.EmptyInput("until-silence capture")
	}

	samples := make([]float32, 0, len(frames)*u.cfg.FrameSize)
	for _, f := range frames {
		samples = append(samples, f...)
	}

	u.log.Debug("until-silence capture complete", logger.Fields(
		"frames", len(frames),
		"stopped_on", stoppedOn,
	))
	return &Buffer{Samples: samples, SampleRate: rate}, nil
}

// meanAbs is the per-frame energy measure used for silence detection.
func meanAbs(frame []float32) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		if s < 0 {
			sum -= float64(s)
		} else {
			sum += float64(s)
		}
	}
	return sum / float64(len(frame))
}
