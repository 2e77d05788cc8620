// Package provider defines the generic provider abstraction shared by the
// ASR, translation, and TTS stage adapters. A Registry holds named
// factories and guarantees that each provider instance is created at most
// once per name: concurrent first use waits on the in-flight creation
// instead of triggering a duplicate load.
package provider
