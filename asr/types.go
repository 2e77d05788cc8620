package asr

import "github.com/kbukum/voicebridge/audio"

// ExpectedSampleRate is the rate ASR backends consume. Buffers are
// resampled to this rate at the stage boundary, never inside the stage.
const ExpectedSampleRate = audio.DefaultSampleRate

// Request holds parameters for a transcription call.
type Request struct {
	// Audio is the captured buffer; ownership transfers to the stage.
	Audio *audio.Buffer
	// Language is the expected language of the audio (e.g. "pt-BR").
	Language string
	// Model is the model identifier from the language spec.
	Model string
	// Device is the resolved compute device ("cpu" or "gpu").
	Device string
}

// Result holds the outcome of a transcription call.
type Result struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// SourceLanguage is the language the audio was transcribed as.
	SourceLanguage string `json:"source_language"`
	// Confidence is the backend's confidence score, if reported.
	Confidence *float64 `json:"confidence,omitempty"`
}
