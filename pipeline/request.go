package pipeline

import (
	"time"

	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/device"
)

// RecordPolicy controls microphone capture for a run.
type RecordPolicy struct {
	// UntilSilence stops recording when sustained silence is detected,
	// bounded by the capture unit's absolute cap.
	UntilSilence bool
	// Duration is the fixed recording length when UntilSilence is false.
	Duration time.Duration
}

// AudioInput names where a run's input audio comes from. Exactly one
// field must be set.
type AudioInput struct {
	// Path loads audio from a file, transcoding if it is not WAV.
	Path string
	// Buffer uses pre-decoded audio, as the web API does.
	Buffer *audio.Buffer
	// Record captures from the default microphone.
	Record *RecordPolicy
}

// Request describes one translation run.
type Request struct {
	// Source and Target are registered language codes.
	Source string
	Target string
	// Input is the audio acquisition mode.
	Input AudioInput
	// Device is the compute preference; empty means auto.
	Device device.Preference
	// RequestID correlates log lines for this run; generated when empty.
	RequestID string
}
