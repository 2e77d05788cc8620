// Package logger provides structured logging for voicebridge built on
// zerolog. It exposes a global logger configured once at startup plus a
// registry of component-tagged loggers so each pipeline stage logs under
// its own component name.
package logger
