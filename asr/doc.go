// Package asr defines the speech-recognition stage adapter: the provider
// interface, its typed request and result shapes, and the registry that
// memoizes provider instances per model identifier.
package asr
