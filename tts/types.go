package tts

import "github.com/kbukum/voicebridge/audio"

// Request holds parameters for a synthesis call.
type Request struct {
	// Text is the translated text to speak.
	Text string
	// Language is the target language code (e.g. "en").
	Language string
	// Model is the voice model identifier from the language spec.
	Model string
	// Device is the resolved compute device ("cpu" or "gpu").
	Device string
}

// Result holds the outcome of a synthesis call.
type Result struct {
	// Audio is the synthesized speech at the backend's native rate.
	Audio *audio.Buffer
	// Language is the language the audio was synthesized in.
	Language string
}
