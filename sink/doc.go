// Package sink persists pipeline output audio. The file sink writes WAV
// files atomically; the memory sink backs the web API's audio retrieval
// endpoint.
package sink
