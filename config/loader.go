package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption customizes Load.
type LoaderOption func(*loaderOpts)

type loaderOpts struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path instead of searching.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOpts) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path instead of searching.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOpts) { o.envFile = path }
}

// Load reads configuration for the named service. Lookup order:
// YAML config file, then .env file, then process environment; later
// sources win. Defaults are applied and the result validated.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	var lo loaderOpts
	for _, opt := range opts {
		opt(&lo)
	}

	if lo.envFile == "" {
		lo.envFile = findFirst(envSearchPaths(serviceName))
	}
	if lo.envFile != "" {
		if err := godotenv.Load(lo.envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", lo.envFile, err)
		}
	}

	v := viper.New()
	if lo.configFile == "" {
		lo.configFile = findFirst(configSearchPaths(serviceName))
	}
	if lo.configFile != "" {
		v.SetConfigFile(lo.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", lo.configFile, err)
		}
	}

	v.SetEnvPrefix("VOICEBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config for %s: %w", serviceName, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		"./config.yml",
		"./config/config.yml",
	}
}

func envSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}
}

func findFirst(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// bindEnvKeys registers nested keys with viper so AutomaticEnv can see
// them; viper only consults the environment for keys it knows about.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"name", "environment", "debug", "device", "output",
		"logging.level", "logging.format", "logging.output",
		"capture.sample_rate", "capture.frame_size", "capture.silence_threshold",
		"capture.debounce_frames", "capture.max_duration",
		"whisper.url", "whisper.model", "whisper.timeout",
		"marian.url", "marian.timeout",
		"openai.api_key", "openai.model",
		"piper.url", "piper.timeout",
		"server.host", "server.port",
		"metrics.enabled", "metrics.endpoint", "metrics.interval",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
