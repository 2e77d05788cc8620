// Package pipeline orchestrates one speech-to-speech translation run:
// capture, transcription, translation, synthesis, output. Stages run
// strictly in order; a stage failure stops the run and is reported as a
// classified outcome, never as a Go error escaping Run.
package pipeline
