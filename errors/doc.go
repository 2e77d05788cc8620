// Package errors provides unified error handling for the voicebridge
// pipeline. Every failure the pipeline can produce carries a
// machine-readable code from the taxonomy in codes.go, a human-readable
// message, a retryable flag, and an HTTP status used by the web layer.
package errors
