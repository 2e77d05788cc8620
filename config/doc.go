// Package config defines the application configuration and its loader.
//
// Configuration is read from an optional YAML file and overlaid with
// environment variables (a .env file is honored when present). Every
// section carries defaults, so an empty config is fully usable against
// local sidecars.
//
//	cfg, err := config.Load("voicebridge")
package config
