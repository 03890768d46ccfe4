package main

import (
	"log/slog"
	"strings"

	"github.com/alnah/go-tex2soy/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "TEX2SOY_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // TEX2SOY_CONFIG: config file name or path
	Encoding   string // TEX2SOY_ENCODING: input text encoding
	InputDir   string // TEX2SOY_INPUT_DIR: default input directory
	OutputDir  string // TEX2SOY_OUTPUT_DIR: default output directory
	Mode       string // TEX2SOY_MODE: concepts or questions
}

// knownEnvVars lists valid TEX2SOY_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEX2SOY_CONFIG":     true,
	"TEX2SOY_ENCODING":   true,
	"TEX2SOY_INPUT_DIR":  true,
	"TEX2SOY_OUTPUT_DIR": true,
	"TEX2SOY_MODE":       true,
}

// loadEnvConfig reads the recognized TEX2SOY_* values through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("TEX2SOY_CONFIG"),
		Encoding:   getenv("TEX2SOY_ENCODING"),
		InputDir:   getenv("TEX2SOY_INPUT_DIR"),
		OutputDir:  getenv("TEX2SOY_OUTPUT_DIR"),
		Mode:       getenv("TEX2SOY_MODE"),
	}
}

// warnUnknownEnvVars logs a warning for each unrecognized TEX2SOY_* variable
// in environ, which holds "KEY=value" pairs.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides config file values with set environment values.
// CLI flags are applied afterwards by mergeFlags, giving
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Encoding != "" {
		cfg.Input.Encoding = env.Encoding
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Mode != "" {
		cfg.Mode = env.Mode
	}
}
