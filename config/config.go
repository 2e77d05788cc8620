package config

import (
	"fmt"
	"time"

	"github.com/kbukum/voicebridge/asr/whisper"
	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/logger"
	"github.com/kbukum/voicebridge/mt/marian"
	"github.com/kbukum/voicebridge/mt/openai"
	"github.com/kbukum/voicebridge/tts/piper"
	"github.com/kbukum/voicebridge/validation"
)

// DefaultOutputPath is where pipeline results land when no destination
// is given.
const DefaultOutputPath = "output_translated.wav"

// Config is the full application configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging logger.Config       `yaml:"logging" mapstructure:"logging"`
	Capture audio.CaptureConfig `yaml:"capture" mapstructure:"capture"`

	// Device is the compute device preference for model backends.
	Device string `yaml:"device" mapstructure:"device" validate:"oneof=auto cpu gpu"`
	// Output is the default destination path for synthesized audio.
	Output string `yaml:"output" mapstructure:"output" validate:"required"`

	Whisper whisper.Config `yaml:"whisper" mapstructure:"whisper"`
	Marian  marian.Config  `yaml:"marian" mapstructure:"marian"`
	OpenAI  openai.Config  `yaml:"openai" mapstructure:"openai"`
	Piper   piper.Config   `yaml:"piper" mapstructure:"piper"`

	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// ServerConfig holds the web API listener settings.
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port" validate:"gt=0,lte=65535"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsConfig holds OTLP metric export settings.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills every unset field across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "voicebridge"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Device == "" {
		c.Device = "auto"
	}
	if c.Output == "" {
		c.Output = DefaultOutputPath
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8386
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = "localhost:4318"
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15 * time.Second
	}
	c.Logging.ApplyDefaults()
	c.Capture.ApplyDefaults()
	c.Whisper.ApplyDefaults()
	c.Marian.ApplyDefaults()
	c.Piper.ApplyDefaults()
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	return nil
}
