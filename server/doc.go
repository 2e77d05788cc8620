// Package server exposes the translation pipeline over HTTP. It serves
// the browser-facing API: health, supported languages, translation of
// uploaded audio, and retrieval of synthesized results.
package server
