// Package tts defines the speech synthesis stage contract. Providers turn
// translated text into audio buffers; the reference implementation talks to
// a piper sidecar over HTTP.
package tts
